package assessments

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestRecommendationOutputValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{name: "valid", raw: validRecommendation},
		{name: "empty analysis", raw: `{"analysis":" ","recommendations":[{"therapistType":"Counselor"}],"nextSteps":["a"]}`, wantErr: "analysis is empty"},
		{name: "no recommendations", raw: `{"analysis":"x","recommendations":[{"therapistType":" "}],"nextSteps":["a"]}`, wantErr: "recommendations is empty"},
		{name: "no next steps", raw: `{"analysis":"x","recommendations":[{"therapistType":"Counselor"}],"nextSteps":[""]}`, wantErr: "nextSteps is empty"},
		{name: "score as string", raw: `{"analysis":"x","score":"eight","recommendations":[{"therapistType":"Counselor"}],"nextSteps":["a"]}`},
		{name: "wrong type", raw: `{"analysis":1}`, wantErr: "llm output parse"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var out recommendationOutput
			err := decodeOutput(json.RawMessage(tt.raw), &out)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTriageOutputValidateListsAllProblems(t *testing.T) {
	var out triageOutput
	err := decodeOutput(json.RawMessage(`{"explanation":"","selfHelpRecommendations":[]}`), &out)
	if !errors.Is(err, errSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}
	if !strings.Contains(err.Error(), "explanation is empty") || !strings.Contains(err.Error(), "selfHelpRecommendations is empty") {
		t.Fatalf("expected both problems, got %v", err)
	}
}
