package analyses

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores records in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu      sync.RWMutex
	byID    map[string]Record
	byEmail map[string][]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:    make(map[string]Record),
		byEmail: make(map[string][]string),
	}
}

// Create stores the record.
func (r *MemoryRepo) Create(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rec.ID] = rec
	r.byEmail[rec.UserData.Email] = append(r.byEmail[rec.UserData.Email], rec.ID)
	return nil
}

// GetByID returns a record by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Complete stores the normalized analysis and completes the record.
func (r *MemoryRepo) Complete(ctx context.Context, id string, analysis map[string]any, processingTimeMs int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	rec.Analysis = analysis
	rec.Status = StatusCompleted
	rec.ProcessingTimeMs = processingTimeMs
	rec.UpdatedAt = time.Now().UTC()
	r.byID[id] = rec
	return nil
}

// MarkLatestProcessingFailed flips the newest processing record for the email
// to failed. It is a no-op when no such record exists.
func (r *MemoryRepo) MarkLatestProcessingFailed(ctx context.Context, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var latest *Record
	for _, id := range r.byEmail[email] {
		rec, ok := r.byID[id]
		if !ok || rec.Status != StatusProcessing {
			continue
		}
		if latest == nil || rec.CreatedAt.After(latest.CreatedAt) {
			copied := rec
			latest = &copied
		}
	}
	if latest == nil {
		return nil
	}
	latest.Status = StatusFailed
	latest.UpdatedAt = time.Now().UTC()
	r.byID[latest.ID] = *latest
	return nil
}

// ListByEmail returns records for the email newest-first, analysis omitted.
func (r *MemoryRepo) ListByEmail(ctx context.Context, email string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Record, 0, len(r.byEmail[email]))
	for _, id := range r.byEmail[email] {
		rec, ok := r.byID[id]
		if !ok {
			continue
		}
		rec.Analysis = nil
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Ping reports the store as reachable.
func (r *MemoryRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}

var _ Repo = (*MemoryRepo)(nil)
