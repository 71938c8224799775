package analyses

import "time"

const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// UserData holds the contact fields submitted with a recording. All fields
// are opaque strings; email is only used as a lookup key.
type UserData struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Record is one persisted voice-survey analysis.
type Record struct {
	ID               string         `json:"analysisId"`
	UserData         UserData       `json:"userData"`
	Questions        []string       `json:"questions"`
	Status           string         `json:"status"`
	Analysis         map[string]any `json:"analysis,omitempty"`
	ProcessingTimeMs int64          `json:"processingTime"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}
