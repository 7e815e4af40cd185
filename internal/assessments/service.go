package assessments

import (
	"context"
	"encoding/json"
	"time"

	"triage-backend/internal/completion"
	"triage-backend/internal/llm"
	"triage-backend/internal/questionnaires"
	"triage-backend/internal/shared/metrics"
	"triage-backend/internal/shared/telemetry"
	"triage-backend/internal/usage"
)

// Service scores submissions and asks the model for recommendations.
type Service struct {
	LLM     llm.Client
	Usage   *usage.Service
	Model   string
	Timeout time.Duration
}

// Score computes the local result and records it.
func (s *Service) Score(sub questionnaires.Submission) questionnaires.ScoreResult {
	res := questionnaires.Score(sub)
	metrics.IncSubmissionScored(res.SelfHarmFlag)
	return res
}

// Recommend scores sub and requests a narrative, professionals and next
// steps from the model. The returned score is always the local one.
func (s *Service) Recommend(ctx context.Context, principal string, sub questionnaires.Submission) (RecommendationResponse, error) {
	res := s.Score(sub)
	var out recommendationOutput
	err := s.runner().Run(ctx, principal, buildAssessmentPrompt(sub, res, s.Model), func(raw json.RawMessage) error {
		out = recommendationOutput{}
		return decodeOutput(raw, &out)
	})
	if err != nil {
		return RecommendationResponse{}, err
	}
	resp := normalizeRecommendation(out, sub.Type(), res)
	logCompleted(ctx, llm.TemplateAssessment, resp.ID, sub.Type(), res)
	return resp, nil
}

// Triage scores sub and requests triage-level recommendations.
func (s *Service) Triage(ctx context.Context, principal string, sub questionnaires.Submission) (TriageResponse, error) {
	res := s.Score(sub)
	var out triageOutput
	err := s.runner().Run(ctx, principal, buildTriagePrompt(sub, res, s.Model), func(raw json.RawMessage) error {
		out = triageOutput{}
		return decodeOutput(raw, &out)
	})
	if err != nil {
		return TriageResponse{}, err
	}
	resp := normalizeTriage(out, sub.Type(), res)
	logCompleted(ctx, llm.TemplateTriage, resp.ID, sub.Type(), res)
	return resp, nil
}

func (s *Service) runner() completion.Runner {
	return completion.Runner{LLM: s.LLM, Usage: s.Usage, Timeout: s.Timeout}
}

func logCompleted(ctx context.Context, op, id string, t questionnaires.Type, res questionnaires.ScoreResult) {
	telemetry.Info("assessment.completed", map[string]any{
		"request_id":         completion.RequestIDFromContext(ctx),
		"op":                 op,
		"assessment_id":      id,
		"questionnaire_type": string(t),
		"severity":           string(res.Severity),
		"self_harm":          res.SelfHarmFlag,
	})
}
