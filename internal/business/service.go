package business

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"triage-backend/internal/assessments/resources"
	"triage-backend/internal/completion"
	"triage-backend/internal/llm"
	"triage-backend/internal/shared/telemetry"
	"triage-backend/internal/usage"
)

// suggestionOutput mirrors the model's JSON. List fields tolerate a single
// string because older prompts asked for prose.
type suggestionOutput struct {
	BusinessModel         string     `json:"businessModel"`
	ConfidenceScore       float64    `json:"confidenceScore"`
	Reasons               stringList `json:"reasons"`
	MVPFeatures           stringList `json:"mvpFeatures"`
	GTMChannels           stringList `json:"gtmChannels"`
	MonetizationForecasts stringList `json:"monetizationForecasts"`
}

func (o suggestionOutput) validate() error {
	var problems []string
	if strings.TrimSpace(o.BusinessModel) == "" {
		problems = append(problems, "businessModel is empty")
	}
	if len(resources.MergeStrings(o.Reasons)) == 0 {
		problems = append(problems, "reasons is empty")
	}
	if len(problems) > 0 {
		return errors.New("schema validation failed: " + strings.Join(problems, "; "))
	}
	return nil
}

// Service suggests business models for digital mental-health ventures.
type Service struct {
	LLM     llm.Client
	Usage   *usage.Service
	Model   string
	Timeout time.Duration
}

// Suggest validates c and asks the model for a business model.
func (s *Service) Suggest(ctx context.Context, principal string, c Criteria) (Suggestion, error) {
	if err := Validate(&c); err != nil {
		return Suggestion{}, err
	}
	runner := completion.Runner{LLM: s.LLM, Usage: s.Usage, Timeout: s.Timeout}
	var out suggestionOutput
	err := runner.Run(ctx, principal, buildPrompt(c, s.Model), func(raw json.RawMessage) error {
		out = suggestionOutput{}
		if err := json.Unmarshal(raw, &out); err != nil {
			return fmt.Errorf("llm output parse: %w", err)
		}
		return out.validate()
	})
	if err != nil {
		return Suggestion{}, err
	}
	suggestion := normalize(out, clinicallyInvolved(c))
	telemetry.Info("business.suggested", map[string]any{
		"request_id":         completion.RequestIDFromContext(ctx),
		"confidence":         suggestion.ConfidenceScore,
		"compliance_warning": suggestion.ComplianceWarning,
	})
	return suggestion, nil
}

func normalize(out suggestionOutput, compliance bool) Suggestion {
	return Suggestion{
		BusinessModel:         strings.TrimSpace(out.BusinessModel),
		ConfidenceScore:       clampConfidence(out.ConfidenceScore),
		Reasons:               resources.MergeStrings(out.Reasons),
		MVPFeatures:           resources.MergeStrings(out.MVPFeatures),
		GTMChannels:           resources.MergeStrings(out.GTMChannels),
		MonetizationForecasts: resources.MergeStrings(out.MonetizationForecasts),
		ComplianceWarning:     compliance,
	}
}

// clampConfidence keeps the score in [0,1]. Values above 1 are read as
// percentages.
func clampConfidence(v float64) float64 {
	if v > 1 && v <= 100 {
		v = v / 100
	}
	return math.Max(0, math.Min(1, v))
}
