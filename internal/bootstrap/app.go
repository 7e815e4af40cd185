package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"triage-backend/internal/assessments"
	"triage-backend/internal/business"
	"triage-backend/internal/llm"
	openai "triage-backend/internal/llm/openai"
	"triage-backend/internal/services/health"
	"triage-backend/internal/shared/auth"
	"triage-backend/internal/shared/config"
	"triage-backend/internal/shared/server"
	"triage-backend/internal/shared/storage/db"
	"triage-backend/internal/shared/telemetry"
	"triage-backend/internal/smile"
	"triage-backend/internal/usage"
)

// App holds shared dependencies.
type App struct {
	Config             config.Config
	Router             *gin.Engine
	DB                 *sql.DB
	Redis              *redis.Client
	LLM                llm.Client
	Keys               *auth.Keys
	UsageService       *usage.Service
	AssessmentsService *assessments.Service
	BusinessService    *business.Service
	SmileService       *smile.Service
	HealthService      *health.Service
}

// Build prepares dependencies and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	app := &App{Config: cfg}

	llmClient, err := BuildLLM(cfg)
	if err != nil {
		return nil, err
	}
	app.LLM = llmClient

	keys, err := auth.NewKeys(cfg.JWTSecret, cfg.IsProduction())
	if err != nil {
		return nil, err
	}
	app.Keys = keys

	usageSvc, err := app.buildUsage(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.UsageService = usageSvc

	app.AssessmentsService = &assessments.Service{
		LLM:     llmClient,
		Usage:   usageSvc,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	}
	app.BusinessService = &business.Service{
		LLM:     llmClient,
		Usage:   usageSvc,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	}
	app.SmileService = &smile.Service{
		LLM:         llmClient,
		VisionModel: cfg.LLMVisionModel,
		Usage:       usageSvc,
		Timeout:     cfg.LLMTimeout,
	}

	var pinger health.Pinger
	switch {
	case app.DB != nil:
		pinger = app.DB
	case app.Redis != nil:
		pinger = redisPinger{client: app.Redis}
	}
	app.HealthService = health.NewService(cfg.LLMProvider == "openai", pinger)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            cfg,
		Verifier:          keys,
		Health:            app.HealthService,
		AssessmentHandler: assessments.NewHandler(app.AssessmentsService),
		BusinessHandler:   business.NewHandler(app.BusinessService),
		SmileHandler:      smile.NewHandler(app.SmileService),
		UsageHandler:      usage.NewHandler(usageSvc),
	})

	return app, nil
}

// BuildLLM returns the configured model client, or the placeholder when
// LLM_PROVIDER=none.
func BuildLLM(cfg config.Config) (llm.Client, error) {
	if cfg.LLMProvider != "openai" {
		return llm.PlaceholderClient{}, nil
	}
	return openai.NewClient(openai.Options{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.LLMModel,
		BaseURL: cfg.LLMBaseURL,
		Timeout: cfg.LLMTimeout,
	})
}

// Close releases the database and Redis connections.
func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
}

func (a *App) buildUsage(ctx context.Context) (*usage.Service, error) {
	policy := usage.DefaultPolicy(a.Config.DailyLLMLimit)
	switch a.Config.UsageStore {
	case "postgres":
		sqlDB, err := buildDB(ctx, a.Config)
		if err != nil {
			return nil, err
		}
		if sqlDB == nil {
			return usage.NewService(policy), nil
		}
		a.DB = sqlDB
		return usage.NewStoreService(usage.NewPGStore(sqlDB, policy)), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     a.Config.RedisAddr,
			Password: a.Config.RedisPassword,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			if isDevLike(a.Config.Env) {
				telemetry.Warn("bootstrap.redis_unavailable", map[string]any{"error": err.Error(), "fallback": "memory"})
				return usage.NewService(policy), nil
			}
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		a.Redis = client
		return usage.NewStoreService(usage.NewRedisStore(client, policy)), nil
	default:
		return usage.NewService(policy), nil
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database_unavailable", map[string]any{"error": err.Error(), "fallback": "memory"})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) PingContext(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
