package health

import (
	"context"

	"voice-backend/internal/llm"
)

// Pinger is the minimal read surface of the storage layer.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Service probes the two external dependencies without persisting anything.
type Service struct {
	AI    llm.Client
	Store Pinger
}

// NewService constructs a health service.
func NewService(ai llm.Client, store Pinger) *Service {
	return &Service{AI: ai, Store: store}
}

// Status reports each dependency probe as a boolean.
type Status struct {
	AI       bool `json:"ai"`
	Database bool `json:"database"`
}

// Healthy is the logical AND of both probes.
func (s Status) Healthy() bool {
	return s.AI && s.Database
}

// Check probes both dependencies.
func (s *Service) Check(ctx context.Context) Status {
	var status Status
	if s.AI != nil {
		status.AI = s.AI.Ping(ctx) == nil
	}
	if s.Store != nil {
		status.Database = s.Store.Ping(ctx) == nil
	}
	return status
}
