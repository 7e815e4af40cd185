package smile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"triage-backend/internal/completion"
	"triage-backend/internal/llm"
	"triage-backend/internal/shared/telemetry"
	"triage-backend/internal/usage"
)

// Result is the normalized smile estimate.
type Result struct {
	SmilingPercentage int    `json:"smilingPercentage"`
	Reason            string `json:"reason"`
}

type resultOutput struct {
	SmilingPercentage *float64 `json:"smilingPercentage"`
	Reason            string   `json:"reason"`
}

// Service estimates how much the person in a photo is smiling.
type Service struct {
	LLM llm.Client
	// VisionModel must accept image input.
	VisionModel string
	Usage       *usage.Service
	Timeout     time.Duration
}

// Analyze validates photoDataURI and asks the vision model for an estimate.
func (s *Service) Analyze(ctx context.Context, principal, photoDataURI string) (Result, error) {
	photo, err := ParsePhoto(photoDataURI)
	if err != nil {
		return Result{}, err
	}
	prompt := llm.Prompt{
		Name:         llm.TemplateSmile,
		User:         llm.Render(llm.TemplateSmile, nil),
		ImageDataURI: photo.DataURI(),
		Model:        s.VisionModel,
	}
	runner := completion.Runner{LLM: s.LLM, Usage: s.Usage, Timeout: s.Timeout}
	var out resultOutput
	err = runner.Run(ctx, principal, prompt, func(raw json.RawMessage) error {
		out = resultOutput{}
		if err := json.Unmarshal(raw, &out); err != nil {
			return fmt.Errorf("llm output parse: %w", err)
		}
		if out.SmilingPercentage == nil {
			return errors.New("schema validation failed: smilingPercentage is missing")
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	res := Result{
		SmilingPercentage: clampPercentage(*out.SmilingPercentage),
		Reason:            strings.TrimSpace(out.Reason),
	}
	telemetry.Info("smile.analyzed", map[string]any{
		"request_id":  completion.RequestIDFromContext(ctx),
		"mime_type":   photo.MimeType,
		"photo_bytes": len(photo.Data),
		"percentage":  res.SmilingPercentage,
	})
	return res, nil
}

func clampPercentage(v float64) int {
	return int(math.Round(math.Max(0, math.Min(100, v))))
}
