package health

import (
	"context"
	"errors"
	"testing"

	"voice-backend/internal/llm"
)

type stubAI struct {
	err error
}

func (s stubAI) GenerateFromAudio(ctx context.Context, input llm.AudioInput) (string, error) {
	return "", errors.New("not used")
}

func (s stubAI) Ping(ctx context.Context) error { return s.err }

type stubStore struct {
	err error
}

func (s stubStore) Ping(ctx context.Context) error { return s.err }

func TestCheckAllHealthy(t *testing.T) {
	svc := NewService(stubAI{}, stubStore{})

	status := svc.Check(context.Background())
	if !status.AI || !status.Database {
		t.Fatalf("expected both probes healthy, got %+v", status)
	}
	if !status.Healthy() {
		t.Fatalf("expected overall healthy")
	}
}

func TestCheckDegraded(t *testing.T) {
	cases := []struct {
		name   string
		aiErr  error
		dbErr  error
		wantAI bool
		wantDB bool
	}{
		{name: "ai down", aiErr: errors.New("unreachable"), wantAI: false, wantDB: true},
		{name: "db down", dbErr: errors.New("conn refused"), wantAI: true, wantDB: false},
		{name: "both down", aiErr: errors.New("x"), dbErr: errors.New("y")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(stubAI{err: tc.aiErr}, stubStore{err: tc.dbErr})
			status := svc.Check(context.Background())
			if status.AI != tc.wantAI || status.Database != tc.wantDB {
				t.Fatalf("got %+v", status)
			}
			if status.Healthy() {
				t.Fatalf("expected overall unhealthy")
			}
		})
	}
}

func TestCheckNilDependencies(t *testing.T) {
	svc := &Service{}

	status := svc.Check(context.Background())
	if status.AI || status.Database || status.Healthy() {
		t.Fatalf("nil dependencies must report unhealthy, got %+v", status)
	}
}
