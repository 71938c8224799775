package analyses

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreate(t *testing.T) {
	repo, mock := newMockRepo(t)

	rec := Record{
		ID:        "analysis-1",
		UserData:  UserData{Name: "Asha", Email: "asha@example.com", Phone: "+91-99999"},
		Questions: SurveyQuestions(),
		Status:    StatusProcessing,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(
			rec.ID,
			rec.UserData.Name,
			rec.UserData.Email,
			rec.UserData.Phone,
			sqlmock.AnyArg(), // questions jsonb
			rec.Status,
			rec.CreatedAt,
			rec.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "phone", "questions", "status", "analysis", "processing_time_ms", "created_at", "updated_at",
	}).AddRow(
		"analysis-1", "Asha", "asha@example.com", "+91-99999",
		[]byte(`["q1","q2"]`), StatusCompleted, `{"transcription":"hi"}`, int64(1234), now, now,
	)
	mock.ExpectQuery("SELECT id, name, email, phone, questions, status, analysis, processing_time_ms").
		WithArgs("analysis-1").
		WillReturnRows(rows)

	rec, err := repo.GetByID(context.Background(), "analysis-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if rec.Status != StatusCompleted || rec.ProcessingTimeMs != 1234 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Analysis["transcription"] != "hi" {
		t.Fatalf("expected analysis decoded, got %v", rec.Analysis)
	}
	if len(rec.Questions) != 2 {
		t.Fatalf("expected questions decoded, got %v", rec.Questions)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, name, email, phone").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoCompleteUnknownID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE analyses").
		WithArgs(sqlmock.AnyArg(), StatusCompleted, int64(500), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Complete(context.Background(), "missing", map[string]any{"transcription": "hi"}, 500)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoComplete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE analyses").
		WithArgs(sqlmock.AnyArg(), StatusCompleted, int64(500), "analysis-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Complete(context.Background(), "analysis-1", map[string]any{"transcription": "hi"}, 500); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoMarkLatestProcessingFailedNoRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE analyses").
		WithArgs(StatusFailed, "nobody@example.com", StatusProcessing).
		WillReturnResult(sqlmock.NewResult(0, 0))

	// Nothing in flight for the email is not an error.
	if err := repo.MarkLatestProcessingFailed(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("MarkLatestProcessingFailed: %v", err)
	}
}

func TestPGRepoListByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "phone", "questions", "status", "processing_time_ms", "created_at", "updated_at",
	}).
		AddRow("a2", "Asha", "asha@example.com", "", []byte(`[]`), StatusCompleted, int64(900), now, now).
		AddRow("a1", "Asha", "asha@example.com", "", []byte(`[]`), StatusFailed, nil, now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery("SELECT id, name, email, phone, questions, status, processing_time_ms").
		WithArgs("asha@example.com").
		WillReturnRows(rows)

	recs, err := repo.ListByEmail(context.Background(), "asha@example.com")
	if err != nil {
		t.Fatalf("ListByEmail: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].ID != "a2" || recs[1].ID != "a1" {
		t.Fatalf("unexpected order: %v, %v", recs[0].ID, recs[1].ID)
	}
	if recs[0].Analysis != nil || recs[1].Analysis != nil {
		t.Fatalf("list must not carry analysis payloads")
	}
	if recs[1].ProcessingTimeMs != 0 {
		t.Fatalf("null processing time should decode as zero, got %d", recs[1].ProcessingTimeMs)
	}
}

func TestPGRepoPing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT 1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	if err := repo.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
