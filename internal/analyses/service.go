package analyses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"voice-backend/internal/llm"
	"voice-backend/internal/shared/metrics"
	"voice-backend/internal/shared/telemetry"
)

// Service contains the analysis flow: persist a processing record, call the
// model once, normalize the reply and complete the record.
type Service struct {
	Repo Repo
	LLM  llm.Client
}

// AnalyzeInput carries one uploaded recording and the submitted user fields.
type AnalyzeInput struct {
	Audio    []byte
	FileName string
	Name     string
	Email    string
	Phone    string
}

// Analyze runs the full request flow and returns the completed record. On
// any failure after the record is created, the newest processing record for
// the email is flipped to failed (best effort) before the error is returned.
func (s *Service) Analyze(ctx context.Context, in AnalyzeInput) (Record, error) {
	start := time.Now()
	if len(in.Audio) == 0 {
		return Record{}, ErrNoAudio
	}
	if s.LLM == nil {
		return Record{}, errors.New("missing llm client")
	}

	now := time.Now().UTC()
	rec := Record{
		ID: uuid.NewString(),
		UserData: UserData{
			Name:  in.Name,
			Email: in.Email,
			Phone: in.Phone,
		},
		Questions: SurveyQuestions(),
		Status:    StatusProcessing,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The processing record goes in before the model call so a crash
	// mid-flight leaves a traceable row.
	if err := s.Repo.Create(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("create record: %w", err)
	}
	metrics.IncAnalysisStarted()
	telemetry.Info("analysis.started", map[string]any{
		"analysis_id": rec.ID,
		"email":       rec.UserData.Email,
		"file_name":   in.FileName,
		"mime_type":   ResolveMIMEType(in.FileName),
		"audio_bytes": len(in.Audio),
	})

	reply, err := s.LLM.GenerateFromAudio(ctx, llm.AudioInput{
		Audio:    in.Audio,
		MIMEType: ResolveMIMEType(in.FileName),
		Prompt:   BuildPrompt(rec.UserData),
	})
	if err != nil {
		s.failLatest(rec.UserData.Email, rec.ID)
		return Record{}, fmt.Errorf("model call: %w", err)
	}

	parsed, usedFallback := ParseModelReply(reply)
	if usedFallback {
		metrics.IncAnalysisFallback()
		telemetry.Warn("analysis.fallback", map[string]any{
			"analysis_id": rec.ID,
			"reply_bytes": len(reply),
		})
	}
	normalized := Normalize(parsed)

	processingMs := time.Since(start).Milliseconds()
	if err := s.Repo.Complete(ctx, rec.ID, normalized, processingMs); err != nil {
		s.failLatest(rec.UserData.Email, rec.ID)
		return Record{}, fmt.Errorf("complete record: %w", err)
	}
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(processingMs))
	telemetry.Info("analysis.completed", map[string]any{
		"analysis_id": rec.ID,
		"email":       rec.UserData.Email,
		"duration_ms": processingMs,
		"fallback":    usedFallback,
	})

	rec.Analysis = normalized
	rec.Status = StatusCompleted
	rec.ProcessingTimeMs = processingMs
	rec.UpdatedAt = time.Now().UTC()
	return rec, nil
}

// Get returns a record by ID.
func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	if id == "" {
		return Record{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

// ListByEmail returns records for an email, newest first, analysis omitted.
func (s *Service) ListByEmail(ctx context.Context, email string) ([]Record, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}
	return s.Repo.ListByEmail(ctx, email)
}

// failLatest is advisory cleanup: it runs on a background context because the
// request context may already be unusable, and its own failure is only logged.
func (s *Service) failLatest(email, analysisID string) {
	metrics.IncAnalysisFailed()
	if err := s.Repo.MarkLatestProcessingFailed(context.Background(), email); err != nil {
		telemetry.Error("analysis.mark_failed", map[string]any{
			"analysis_id": analysisID,
			"email":       email,
			"error":       err.Error(),
		})
	}
}
