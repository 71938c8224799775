package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres. The analysis payload and question
// list are stored as jsonb documents.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new record.
func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO analyses (id, name, email, phone, questions, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	questions, err := json.Marshal(rec.Questions)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.UserData.Name,
		rec.UserData.Email,
		rec.UserData.Phone,
		questions,
		rec.Status,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

// GetByID returns a record by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Record, error) {
	const query = `
SELECT id, name, email, phone, questions, status, analysis, processing_time_ms, created_at, updated_at
FROM analyses
WHERE id = $1
LIMIT 1`

	var rec Record
	var questions []byte
	var analysis sql.NullString
	var processingTime sql.NullInt64
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&rec.ID,
		&rec.UserData.Name,
		&rec.UserData.Email,
		&rec.UserData.Phone,
		&questions,
		&rec.Status,
		&analysis,
		&processingTime,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	if err := json.Unmarshal(questions, &rec.Questions); err != nil {
		rec.Questions = nil
	}
	if analysis.Valid {
		rec.Analysis = map[string]any{}
		if err := json.Unmarshal([]byte(analysis.String), &rec.Analysis); err != nil {
			rec.Analysis = nil
		}
	}
	if processingTime.Valid {
		rec.ProcessingTimeMs = processingTime.Int64
	}
	return rec, nil
}

// Complete stores the normalized analysis and flips the record to completed.
func (r *PGRepo) Complete(ctx context.Context, id string, analysis map[string]any, processingTimeMs int64) error {
	const query = `
UPDATE analyses
SET analysis = $1::jsonb,
    status = $2,
    processing_time_ms = $3,
    updated_at = now()
WHERE id = $4`

	payload, err := json.Marshal(analysis)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query, payload, StatusCompleted, processingTimeMs, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkLatestProcessingFailed flips the newest processing record for the email
// to failed. Zero affected rows is not an error.
func (r *PGRepo) MarkLatestProcessingFailed(ctx context.Context, email string) error {
	const query = `
UPDATE analyses
SET status = $1,
    updated_at = now()
WHERE id = (
	SELECT id FROM analyses
	WHERE email = $2 AND status = $3
	ORDER BY created_at DESC
	LIMIT 1
)`

	_, err := r.DB.ExecContext(ctx, query, StatusFailed, email, StatusProcessing)
	return err
}

// ListByEmail returns records for the email newest-first. The analysis
// payload is intentionally not selected.
func (r *PGRepo) ListByEmail(ctx context.Context, email string) ([]Record, error) {
	const query = `
SELECT id, name, email, phone, questions, status, processing_time_ms, created_at, updated_at
FROM analyses
WHERE email = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var questions []byte
		var processingTime sql.NullInt64
		if err := rows.Scan(
			&rec.ID,
			&rec.UserData.Name,
			&rec.UserData.Email,
			&rec.UserData.Phone,
			&questions,
			&rec.Status,
			&processingTime,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(questions, &rec.Questions); err != nil {
			rec.Questions = nil
		}
		if processingTime.Valid {
			rec.ProcessingTimeMs = processingTime.Int64
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Ping issues a minimal read against the database.
func (r *PGRepo) Ping(ctx context.Context) error {
	var one int
	return r.DB.QueryRowContext(ctx, "SELECT 1").Scan(&one)
}

var _ Repo = (*PGRepo)(nil)
