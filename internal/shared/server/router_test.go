package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"voice-backend/internal/analyses"
	"voice-backend/internal/llm"
	"voice-backend/internal/services/health"
	"voice-backend/internal/shared/config"
)

type stubAI struct {
	pingErr error
}

func (s stubAI) GenerateFromAudio(ctx context.Context, input llm.AudioInput) (string, error) {
	return "", errors.New("not used")
}

func (s stubAI) Ping(ctx context.Context) error { return s.pingErr }

func buildRouter(aiErr error) http.Handler {
	cfg := config.Config{Env: "dev", MaxUploadBytes: 50 << 20}
	repo := analyses.NewMemoryRepo()
	ai := stubAI{pingErr: aiErr}
	handler := analyses.NewHandler(&analyses.Service{Repo: repo, LLM: ai}, cfg)
	return NewRouter(cfg, handler, health.NewService(ai, repo))
}

func TestHealthEndpointHealthy(t *testing.T) {
	router := buildRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != true || body["ai"] != true || body["database"] != true {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestHealthEndpointDegraded(t *testing.T) {
	router := buildRouter(errors.New("model unreachable"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != false || body["ai"] != false || body["database"] != true {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := buildRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "analysis_started_total") {
		t.Fatalf("expected counters in metrics output, got %s", resp.Body.String())
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{
		"":      ":8080",
		"9000":  ":9000",
		":9000": ":9000",
	}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
