package llm

import (
	"context"
	"errors"
)

// AudioInput carries one inline audio attachment plus the instruction text
// for a single multimodal generation request.
type AudioInput struct {
	Audio    []byte
	MIMEType string
	Prompt   string
}

// Client abstracts the multimodal generative model. Implementations issue
// exactly one remote call per invocation; retries are the caller's decision.
type Client interface {
	// GenerateFromAudio sends the prompt and inline audio and returns the
	// model's text reply.
	GenerateFromAudio(ctx context.Context, input AudioInput) (string, error)
	// Ping issues a minimal text-only request to verify the service is
	// reachable.
	Ping(ctx context.Context) error
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm client not configured")

// PlaceholderClient is a stub implementation used when no provider is wired.
type PlaceholderClient struct{}

func (PlaceholderClient) GenerateFromAudio(ctx context.Context, input AudioInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrNotConfigured
}

func (PlaceholderClient) Ping(ctx context.Context) error {
	_ = ctx
	return ErrNotConfigured
}
