package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"triage-backend/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log.
const (
	QuestionnaireTypeKey = "questionnaireType"
	SeverityKey          = "severity"
)

// Logging emits a structured log per request. Request bodies are never logged.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		questionnaireType, _ := c.Get(QuestionnaireTypeKey)
		severity, _ := c.Get(SeverityKey)
		isGuest, _ := c.Get(isGuestKey)

		telemetry.Info("request.complete", map[string]any{
			"request_id":         RequestIDFromContext(c),
			"method":             c.Request.Method,
			"route":              route,
			"status":             c.Writer.Status(),
			"duration_ms":        float64(latency.Microseconds()) / 1000.0,
			"user_id":            UserIDFromContext(c),
			"is_guest":           isGuest,
			"questionnaire_type": questionnaireType,
			"severity":           severity,
			"client_ip":          c.ClientIP(),
			"user_agent":         c.Request.UserAgent(),
		})
	}
}
