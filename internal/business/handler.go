package business

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"triage-backend/internal/completion"
	"triage-backend/internal/shared/server/middleware"
	"triage-backend/internal/shared/server/respond"
)

const maxCriteriaBytes = 64 << 10

// Handler exposes the business-model endpoint.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches business routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/business-models", h.suggest)
}

func (h *Handler) suggest(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxCriteriaBytes)
	var req Criteria
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}
	ctx := completion.WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	suggestion, err := h.Svc.Suggest(ctx, middleware.UserIDFromContext(c), req)
	if err != nil {
		var validationErr *ValidationError
		switch {
		case errors.As(err, &validationErr):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Please fill in every field.", validationErr.Issues)
		case completion.WriteError(c, err):
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to suggest a business model", nil)
		}
		return
	}
	respond.OK(c, suggestion)
}
