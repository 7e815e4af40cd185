package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"triage-backend/internal/assessments"
	"triage-backend/internal/business"
	"triage-backend/internal/insights"
	"triage-backend/internal/services/health"
	"triage-backend/internal/shared/config"
	"triage-backend/internal/shared/metrics"
	"triage-backend/internal/shared/server/middleware"
	"triage-backend/internal/shared/server/respond"
	"triage-backend/internal/smile"
	"triage-backend/internal/usage"
)

// Model routes get one request every five seconds with a burst of three.
var llmRateLimitRule = middleware.RateLimitRule{Rate: 0.2, Burst: 3}

// RouterDeps holds the handlers wired into the router.
type RouterDeps struct {
	Config            config.Config
	Verifier          middleware.TokenVerifier
	Health            *health.Service
	AssessmentHandler *assessments.Handler
	BusinessHandler   *business.Handler
	SmileHandler      *smile.Handler
	UsageHandler      *usage.Handler
	// RateLimiter is shared by both route groups; nil builds a fresh one.
	RateLimiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	cfg := deps.Config

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)
	r.GET("/metrics", metrics.Handler())

	limiter := deps.RateLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(nil)
	}
	limits := middleware.RateLimitConfig{
		Limiter: limiter,
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT":                    {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
			middleware.LLMRateLimitGroup: llmRateLimitRule,
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost {
				return middleware.LLMRateLimitGroup
			}
			return ""
		},
	}

	api := r.Group("/api/v1")

	public := api.Group("")
	public.Use(middleware.RateLimit(middleware.RateLimitConfig{Limiter: limiter, Rules: limits.Rules}))
	public.GET("/health", func(c *gin.Context) {
		status := health.Status{OK: true, Database: health.DatabaseDisabled}
		if deps.Health != nil {
			status = deps.Health.Status(c.Request.Context())
		}
		respond.JSON(c, http.StatusOK, status)
	})
	insights.RegisterRoutes(public)
	if deps.AssessmentHandler != nil {
		deps.AssessmentHandler.RegisterPublicRoutes(public)
	}

	protected := api.Group("")
	protected.Use(middleware.Auth(deps.Verifier), middleware.RateLimit(limits))
	registerMeRoutes(protected)
	if deps.AssessmentHandler != nil {
		deps.AssessmentHandler.RegisterRoutes(protected)
	}
	if deps.BusinessHandler != nil {
		deps.BusinessHandler.RegisterRoutes(protected)
	}
	if deps.SmileHandler != nil {
		deps.SmileHandler.RegisterRoutes(protected)
	}
	if deps.UsageHandler != nil {
		deps.UsageHandler.RegisterRoutes(protected)
		if !cfg.IsProduction() {
			deps.UsageHandler.RegisterDevRoutes(protected.Group("/dev"))
		}
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
