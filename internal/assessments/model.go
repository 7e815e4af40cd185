package assessments

import (
	"triage-backend/internal/assessments/resources"
	"triage-backend/internal/questionnaires"
)

// RecommendationResponse is the normalized result of an assessment. Score,
// MaxScore, Severity and SelfHarmFlag always come from local scoring.
type RecommendationResponse struct {
	ID                string                   `json:"id"`
	QuestionnaireType questionnaires.Type      `json:"questionnaireType"`
	Narrative         string                   `json:"analysis"`
	Severity          questionnaires.Severity  `json:"severity"`
	Score             int                      `json:"score"`
	MaxScore          int                      `json:"maxScore"`
	SelfHarmFlag      bool                     `json:"selfHarmFlag"`
	Recommendations   []resources.Professional `json:"recommendations"`
	NextSteps         []string                 `json:"nextSteps"`
	CrisisResources   []string                 `json:"crisisResources,omitempty"`
}

// TriageResponse is the normalized result of the triage flow.
type TriageResponse struct {
	ID                            string                     `json:"id"`
	QuestionnaireType             questionnaires.Type        `json:"questionnaireType"`
	TriageLevel                   questionnaires.TriageLevel `json:"triageLevel"`
	Severity                      questionnaires.Severity    `json:"severity"`
	Score                         int                        `json:"score"`
	MaxScore                      int                        `json:"maxScore"`
	SelfHarmFlag                  bool                       `json:"selfHarmFlag"`
	Explanation                   string                     `json:"explanation"`
	SelfHelpRecommendations       []string                   `json:"selfHelpRecommendations"`
	ProductServiceRecommendations []string                   `json:"productServiceRecommendations"`
	CrisisResources               []string                   `json:"crisisResources"`
}

// ScoreView is the body of the scoring-only endpoint.
type ScoreView struct {
	QuestionnaireType questionnaires.Type        `json:"questionnaireType"`
	Score             int                        `json:"score"`
	MaxScore          int                        `json:"maxScore"`
	Severity          questionnaires.Severity    `json:"severity"`
	TriageLevel       questionnaires.TriageLevel `json:"triageLevel"`
	SelfHarmFlag      bool                       `json:"selfHarmFlag"`
	CrisisResources   []string                   `json:"crisisResources,omitempty"`
}

// NewScoreView renders a local score; crisis resources are attached when the
// self-harm item was endorsed.
func NewScoreView(t questionnaires.Type, res questionnaires.ScoreResult) ScoreView {
	view := ScoreView{
		QuestionnaireType: t,
		Score:             res.Score,
		MaxScore:          res.MaxScore,
		Severity:          res.Severity,
		TriageLevel:       res.Severity.TriageLevel(),
		SelfHarmFlag:      res.SelfHarmFlag,
	}
	if res.SelfHarmFlag {
		view.CrisisResources = resources.Crisis()
	}
	return view
}
