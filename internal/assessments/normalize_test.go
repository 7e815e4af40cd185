package assessments

import (
	"encoding/json"
	"reflect"
	"testing"

	"triage-backend/internal/assessments/resources"
	"triage-backend/internal/questionnaires"
)

func TestNormalizeRecommendationPrefersLocalScore(t *testing.T) {
	var out recommendationOutput
	if err := json.Unmarshal([]byte(validRecommendation), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	res := questionnaires.ScoreResult{Score: 12, MaxScore: 27, Severity: questionnaires.SeverityModerate}

	resp := normalizeRecommendation(out, questionnaires.TypePHQ9, res)
	if resp.Score != 12 {
		t.Fatalf("expected local score 12, got %d", resp.Score)
	}
	if resp.Severity != questionnaires.SeverityModerate {
		t.Fatalf("expected local severity, got %q", resp.Severity)
	}
	if resp.MaxScore != 27 {
		t.Fatalf("expected max score 27, got %d", resp.MaxScore)
	}
	if len(resp.NextSteps) != 1 || resp.NextSteps[0] != "Book an appointment with your GP" {
		t.Fatalf("expected deduped next steps, got %#v", resp.NextSteps)
	}
	if resp.CrisisResources != nil {
		t.Fatalf("expected no crisis resources, got %#v", resp.CrisisResources)
	}
	if resp.ID == "" {
		t.Fatalf("expected id")
	}
}

func TestNormalizeRecommendationSelfHarmLeadsWithCrisis(t *testing.T) {
	out := recommendationOutput{
		Analysis:        "text",
		Recommendations: []resources.Professional{{ProfessionalType: "Psychiatrist", Reason: "medication review"}},
		NextSteps:       []string{"Keep a mood diary"},
	}
	res := questionnaires.ScoreResult{Score: 3, MaxScore: 27, Severity: questionnaires.SeveritySevere, SelfHarmFlag: true}

	resp := normalizeRecommendation(out, questionnaires.TypePHQ9, res)
	if resp.NextSteps[0] != resources.CrisisNextStep {
		t.Fatalf("expected crisis step first, got %#v", resp.NextSteps)
	}
	if resp.Recommendations[0].ProfessionalType != resources.CrisisProfessional().ProfessionalType {
		t.Fatalf("expected crisis professional first, got %#v", resp.Recommendations)
	}
	if !reflect.DeepEqual(resp.CrisisResources, resources.Crisis()) {
		t.Fatalf("expected crisis resources, got %#v", resp.CrisisResources)
	}
	if resp.Recommendations[1].ProfessionalType != "Psychiatrist" {
		t.Fatalf("expected model recommendation kept, got %#v", resp.Recommendations)
	}
}

func TestNormalizeTriageUsesLocalLevel(t *testing.T) {
	var out triageOutput
	if err := json.Unmarshal([]byte(validTriage), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	res := questionnaires.ScoreResult{Score: 16, MaxScore: 21, Severity: questionnaires.SeveritySevere}

	resp := normalizeTriage(out, questionnaires.TypeGAD7, res)
	if resp.TriageLevel != questionnaires.TriageSevere {
		t.Fatalf("expected Severe triage level, got %q", resp.TriageLevel)
	}
	want := []string{"Keep a regular sleep schedule", "Go for a daily walk"}
	if !reflect.DeepEqual(resp.SelfHelpRecommendations, want) {
		t.Fatalf("self-help = %#v, want %#v", resp.SelfHelpRecommendations, want)
	}
	if !reflect.DeepEqual(resp.CrisisResources, []string{"Call a trusted friend"}) {
		t.Fatalf("expected model crisis resources kept, got %#v", resp.CrisisResources)
	}
}

func TestNormalizeTriageSelfHarmPrependsCrisis(t *testing.T) {
	out := triageOutput{
		Explanation:             "text",
		SelfHelpRecommendations: []string{"Rest"},
		CrisisResources:         []string{"Call a trusted friend"},
	}
	res := questionnaires.ScoreResult{Score: 3, MaxScore: 27, Severity: questionnaires.SeveritySevere, SelfHarmFlag: true}

	resp := normalizeTriage(out, questionnaires.TypePHQ9, res)
	crisis := resources.Crisis()
	if len(resp.CrisisResources) != len(crisis)+1 {
		t.Fatalf("unexpected crisis list %#v", resp.CrisisResources)
	}
	if !reflect.DeepEqual(resp.CrisisResources[:len(crisis)], crisis) {
		t.Fatalf("expected fixed crisis list first, got %#v", resp.CrisisResources)
	}
	if resp.CrisisResources[len(crisis)] != "Call a trusted friend" {
		t.Fatalf("expected model entry last, got %#v", resp.CrisisResources)
	}
}

func TestNormalizeTriageEmptyListsAreNotNil(t *testing.T) {
	out := triageOutput{Explanation: "text", SelfHelpRecommendations: []string{"Rest"}}
	resp := normalizeTriage(out, questionnaires.TypeGAD7, questionnaires.ScoreResult{Severity: questionnaires.SeverityMinimal})
	if resp.ProductServiceRecommendations == nil || resp.CrisisResources == nil {
		t.Fatalf("expected empty lists, got %#v", resp)
	}
	if resp.TriageLevel != questionnaires.TriageMild {
		t.Fatalf("expected Minimal to fold into Mild, got %q", resp.TriageLevel)
	}
}
