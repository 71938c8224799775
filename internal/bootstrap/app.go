package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"voice-backend/internal/analyses"
	"voice-backend/internal/llm"
	"voice-backend/internal/llm/gemini"
	"voice-backend/internal/services/health"
	"voice-backend/internal/shared/config"
	"voice-backend/internal/shared/server"
	"voice-backend/internal/shared/storage/db"
)

// App holds shared dependencies, built once at startup.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Repo            analyses.Repo
	LLM             llm.Client
	AnalysisService *analyses.Service
	AnalysisHandler *analyses.Handler
	HealthService   *health.Service
}

// Build prepares shared dependencies and wires the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var repo analyses.Repo
	if sqlDB != nil {
		repo = &analyses.PGRepo{DB: sqlDB}
	} else {
		repo = analyses.NewMemoryRepo()
	}

	llmClient, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc := &analyses.Service{Repo: repo, LLM: llmClient}
	handler := analyses.NewHandler(svc, cfg)
	healthSvc := health.NewService(llmClient, repo)

	app := &App{
		Config:          cfg,
		DB:              sqlDB,
		Repo:            repo,
		LLM:             llmClient,
		AnalysisService: svc,
		AnalysisHandler: handler,
		HealthService:   healthSvc,
	}
	app.Router = server.NewRouter(cfg, handler, healthSvc)
	return app, nil
}

// Close releases held resources.
func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repository")
			return nil, nil
		}
		return nil, errRequired("DATABASE_URL")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if cfg.IsDevLike() {
			log.Printf("bootstrap: database connect failed; using in-memory repository: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		if cfg.IsDevLike() {
			log.Printf("bootstrap: GEMINI_API_KEY empty; using placeholder llm client")
			return llm.PlaceholderClient{}, nil
		}
		return nil, errRequired("GEMINI_API_KEY")
	}
	return gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
}

type errRequired string

func (e errRequired) Error() string { return string(e) + " is required" }
