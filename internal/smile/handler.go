package smile

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"triage-backend/internal/completion"
	"triage-backend/internal/shared/server/middleware"
	"triage-backend/internal/shared/server/respond"
)

// A 5 MiB photo is about 6.7 MiB once base64 encoded.
const maxRequestBytes = 8 << 20

type analyzeRequest struct {
	PhotoDataURI string `json:"photoDataUri"`
}

// Handler exposes the smile endpoint.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches smile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/smile", h.analyze)
}

func (h *Handler) analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}
	ctx := completion.WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	res, err := h.Svc.Analyze(ctx, middleware.UserIDFromContext(c), req.PhotoDataURI)
	if err != nil {
		switch msg := UserMessage(err); {
		case msg != "":
			respond.Error(c, http.StatusBadRequest, "validation_error", msg, []map[string]string{
				{"field": "photoDataUri", "issue": err.Error()},
			})
		case completion.WriteError(c, err):
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to analyze photo", nil)
		}
		return
	}
	respond.OK(c, res)
}
