package completion

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"triage-backend/internal/llm"
	"triage-backend/internal/shared/server/respond"
	"triage-backend/internal/usage"
)

// WriteError maps Runner failures to the error envelope. It reports false
// when err is not one of them, leaving the response untouched.
func WriteError(c *gin.Context, err error) bool {
	var upstreamErr *llm.UpstreamServiceError
	switch {
	case errors.Is(err, usage.ErrLimitReached):
		respond.Error(c, http.StatusTooManyRequests, "limit_reached", "You've reached today's limit for recommendations. Please try again tomorrow.", []map[string]string{
			{"field": "usage", "issue": "limit_reached"},
		})
	case errors.Is(err, usage.ErrMissingPrincipal):
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
	case errors.As(err, &upstreamErr):
		respond.Error(c, http.StatusBadGateway, "upstream_error", upstreamErr.UserMessage(), nil)
	default:
		return false
	}
	return true
}
