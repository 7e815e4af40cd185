package assessments

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"triage-backend/internal/assessments/resources"
)

// Model output for the assessment prompt:
//
//	{
//	  "analysis": "string",
//	  "severity": "string",
//	  "score": "number",
//	  "recommendations": [{"therapistType": "string", "reason": "string"}],
//	  "nextSteps": ["string"]
//	}
//
// severity and score are read but never trusted.
type recommendationOutput struct {
	Analysis        string                   `json:"analysis"`
	Severity        string                   `json:"severity"`
	Score           json.RawMessage          `json:"score"`
	Recommendations []resources.Professional `json:"recommendations"`
	NextSteps       []string                 `json:"nextSteps"`
}

// Model output for the triage prompt:
//
//	{
//	  "triageLevel": "Mild | Moderate | Severe",
//	  "selfHelpRecommendations": ["string"],
//	  "productServiceRecommendations": ["string"],
//	  "crisisResources": ["string"],
//	  "explanation": "string"
//	}
type triageOutput struct {
	TriageLevel                   string   `json:"triageLevel"`
	SelfHelpRecommendations       []string `json:"selfHelpRecommendations"`
	ProductServiceRecommendations []string `json:"productServiceRecommendations"`
	CrisisResources               []string `json:"crisisResources"`
	Explanation                   string   `json:"explanation"`
}

var errSchema = errors.New("schema validation failed")

func (o recommendationOutput) Validate() error {
	var problems []string
	if strings.TrimSpace(o.Analysis) == "" {
		problems = append(problems, "analysis is empty")
	}
	if len(resources.MergeProfessionals(o.Recommendations)) == 0 {
		problems = append(problems, "recommendations is empty")
	}
	if len(resources.MergeStrings(o.NextSteps)) == 0 {
		problems = append(problems, "nextSteps is empty")
	}
	return schemaError(problems)
}

func (o triageOutput) Validate() error {
	var problems []string
	if strings.TrimSpace(o.Explanation) == "" {
		problems = append(problems, "explanation is empty")
	}
	if len(resources.MergeStrings(o.SelfHelpRecommendations)) == 0 {
		problems = append(problems, "selfHelpRecommendations is empty")
	}
	return schemaError(problems)
}

func schemaError(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", errSchema, strings.Join(problems, "; "))
}

type validatable interface {
	Validate() error
}

// decodeOutput decodes raw into out and validates it.
func decodeOutput(raw json.RawMessage, out validatable) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("llm output parse: %w", err)
	}
	return out.Validate()
}
