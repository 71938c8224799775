package analyses

import "context"

// Repo defines persistence operations for analysis records.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	// Complete sets the normalized analysis, flips status to completed and
	// stores the processing time.
	Complete(ctx context.Context, id string, analysis map[string]any, processingTimeMs int64) error
	// MarkLatestProcessingFailed flips the newest processing-status record
	// for the email to failed. Missing records are not an error.
	MarkLatestProcessingFailed(ctx context.Context, email string) error
	// ListByEmail returns records for the email newest-first, without the
	// analysis payload.
	ListByEmail(ctx context.Context, email string) ([]Record, error)
	// Ping issues a minimal read to verify the store is reachable.
	Ping(ctx context.Context) error
}
