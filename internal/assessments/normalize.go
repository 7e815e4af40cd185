package assessments

import (
	"strings"

	"github.com/google/uuid"

	"triage-backend/internal/assessments/resources"
	"triage-backend/internal/questionnaires"
)

// normalizeRecommendation builds the response from model output. The local
// score and severity always replace whatever the model reported.
func normalizeRecommendation(out recommendationOutput, t questionnaires.Type, res questionnaires.ScoreResult) RecommendationResponse {
	resp := RecommendationResponse{
		ID:                uuid.NewString(),
		QuestionnaireType: t,
		Narrative:         strings.TrimSpace(out.Analysis),
		Severity:          res.Severity,
		Score:             res.Score,
		MaxScore:          res.MaxScore,
		SelfHarmFlag:      res.SelfHarmFlag,
		Recommendations:   resources.MergeProfessionals(out.Recommendations),
		NextSteps:         resources.MergeStrings(out.NextSteps),
	}
	if res.SelfHarmFlag {
		resp.Recommendations = resources.WithCrisisProfessional(resp.Recommendations)
		resp.NextSteps = resources.WithCrisisStep(resp.NextSteps)
		resp.CrisisResources = resources.Crisis()
	}
	return resp
}

// normalizeTriage builds the triage response. Crisis resources from the model
// are kept for Severe results; a flagged submission always leads with the
// fixed crisis list.
func normalizeTriage(out triageOutput, t questionnaires.Type, res questionnaires.ScoreResult) TriageResponse {
	resp := TriageResponse{
		ID:                            uuid.NewString(),
		QuestionnaireType:             t,
		TriageLevel:                   res.Severity.TriageLevel(),
		Severity:                      res.Severity,
		Score:                         res.Score,
		MaxScore:                      res.MaxScore,
		SelfHarmFlag:                  res.SelfHarmFlag,
		Explanation:                   strings.TrimSpace(out.Explanation),
		SelfHelpRecommendations:       resources.MergeStrings(out.SelfHelpRecommendations),
		ProductServiceRecommendations: resources.MergeStrings(out.ProductServiceRecommendations),
		CrisisResources:               resources.MergeStrings(out.CrisisResources),
	}
	if res.SelfHarmFlag {
		resp.CrisisResources = resources.WithCrisis(resp.CrisisResources)
	}
	return resp
}
