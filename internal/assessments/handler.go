package assessments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"triage-backend/internal/completion"
	"triage-backend/internal/questionnaires"
	"triage-backend/internal/shared/server/middleware"
	"triage-backend/internal/shared/server/respond"
)

const maxSubmissionBytes = 64 << 10

// Handler wires HTTP handlers to the assessments service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches routes that never call the model.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/questionnaires", h.listQuestionnaires)
	rg.GET("/questionnaires/:type", h.getQuestionnaire)
	rg.POST("/assessments/score", h.score)
}

// RegisterRoutes attaches the model-backed routes. They need an identity.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/assessments", h.recommend)
	rg.POST("/triage", h.triage)
}

func (h *Handler) listQuestionnaires(c *gin.Context) {
	respond.OK(c, questionnaires.Catalog())
}

func (h *Handler) getQuestionnaire(c *gin.Context) {
	t, ok := questionnaires.ParseType(c.Param("type"))
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "questionnaire not found", nil)
		return
	}
	def, _ := questionnaires.Describe(t)
	respond.OK(c, def)
}

func (h *Handler) score(c *gin.Context) {
	sub, ok := bindSubmission(c)
	if !ok {
		return
	}
	res := h.Svc.Score(sub)
	c.Set(middleware.SeverityKey, string(res.Severity))
	respond.OK(c, NewScoreView(sub.Type(), res))
}

func (h *Handler) recommend(c *gin.Context) {
	sub, ok := bindSubmission(c)
	if !ok {
		return
	}
	ctx := completion.WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	resp, err := h.Svc.Recommend(ctx, middleware.UserIDFromContext(c), sub)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.SeverityKey, string(resp.Severity))
	respond.OK(c, resp)
}

func (h *Handler) triage(c *gin.Context) {
	sub, ok := bindSubmission(c)
	if !ok {
		return
	}
	ctx := completion.WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	resp, err := h.Svc.Triage(ctx, middleware.UserIDFromContext(c), sub)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.SeverityKey, string(resp.Severity))
	respond.OK(c, resp)
}

func bindSubmission(c *gin.Context) (questionnaires.Submission, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSubmissionBytes)
	var raw questionnaires.RawSubmission
	if err := c.ShouldBindJSON(&raw); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return nil, false
	}
	sub, err := questionnaires.Validate(raw)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	c.Set(middleware.QuestionnaireTypeKey, string(sub.Type()))
	return sub, true
}

func writeError(c *gin.Context, err error) {
	var validationErr *questionnaires.ValidationError
	if errors.As(err, &validationErr) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Please check your answers and try again.", validationErr.Issues)
		return
	}
	if completion.WriteError(c, err) {
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal", "failed to process assessment", nil)
}
