package business

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"triage-backend/internal/llm"
	"triage-backend/internal/shared/server/respond"
)

type fakeLLM struct {
	mu      sync.Mutex
	resp    string
	prompts []llm.Prompt
}

func (f *fakeLLM) CompleteJSON(ctx context.Context, prompt llm.Prompt) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return json.RawMessage(f.resp), nil
}

func validCriteria() Criteria {
	return Criteria{
		ServiceType:         "Online therapy",
		Ownership:           "Private",
		TargetAgeGroup:      "18-35",
		Location:            "Remote",
		MarketDemand:        "High",
		DeliveryMode:        "App",
		PaymentMethods:      "Subscription",
		AccessibilityGoal:   "Low cost",
		TargetUsers:         "Students",
		Delivery:            "Video sessions",
		Content:             "CBT modules",
		Regulations:         "GDPR",
		Funding:             "Seed",
		Budget:              "$200k",
		Monetization:        "Freemium",
		Scope:               "National",
		DataSensitivity:     "High",
		ClinicalInvolvement: "None",
	}
}

const validSuggestion = `{
  "businessModel": "Freemium subscription",
  "confidenceScore": 0.82,
  "reasons": ["Students are price sensitive", "students are price sensitive"],
  "mvpFeatures": ["Mood tracker"],
  "gtmChannels": "- Campus partnerships\n- Social media",
  "monetizationForecasts": ["Break-even in 18 months"]
}`

func TestValidateReportsEveryMissingField(t *testing.T) {
	c := validCriteria()
	c.Budget = "   "
	c.Scope = ""
	err := Validate(&c)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(validationErr.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %#v", validationErr.Issues)
	}
	if validationErr.Issues[0].Field != "budget" || validationErr.Issues[1].Field != "scope" {
		t.Fatalf("expected json field names, got %#v", validationErr.Issues)
	}
	if validationErr.Issues[0].Issue != "required" {
		t.Fatalf("unexpected issue %q", validationErr.Issues[0].Issue)
	}
}

func TestValidateRejectsLongField(t *testing.T) {
	c := validCriteria()
	c.Content = strings.Repeat("x", 1001)
	err := Validate(&c)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) || validationErr.Issues[0].Issue != "max" {
		t.Fatalf("expected max issue, got %v", err)
	}
}

func TestValidateTrimsFields(t *testing.T) {
	c := validCriteria()
	c.Location = "  Remote  "
	if err := Validate(&c); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.Location != "Remote" {
		t.Fatalf("expected trimmed value, got %q", c.Location)
	}
}

func TestSuggestNormalizesOutput(t *testing.T) {
	fake := &fakeLLM{resp: validSuggestion}
	svc := &Service{LLM: fake}

	got, err := svc.Suggest(context.Background(), "guest:a", validCriteria())
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if got.BusinessModel != "Freemium subscription" || got.ConfidenceScore != 0.82 {
		t.Fatalf("unexpected suggestion %+v", got)
	}
	if len(got.Reasons) != 1 {
		t.Fatalf("expected deduped reasons, got %#v", got.Reasons)
	}
	if len(got.GTMChannels) != 2 || got.GTMChannels[0] != "Campus partnerships" {
		t.Fatalf("expected prose list split, got %#v", got.GTMChannels)
	}
	if got.ComplianceWarning {
		t.Fatalf("expected no compliance warning")
	}
	if strings.Contains(fake.prompts[0].User, complianceNote) {
		t.Fatalf("unexpected compliance note in prompt")
	}
}

func TestSuggestAddsComplianceNote(t *testing.T) {
	fake := &fakeLLM{resp: validSuggestion}
	svc := &Service{LLM: fake}
	c := validCriteria()
	c.ClinicalInvolvement = "Licensed psychologists review plans"

	got, err := svc.Suggest(context.Background(), "guest:a", c)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if !got.ComplianceWarning {
		t.Fatalf("expected compliance warning")
	}
	if !strings.Contains(fake.prompts[0].User, complianceNote) {
		t.Fatalf("expected compliance note in prompt:\n%s", fake.prompts[0].User)
	}
	if !strings.Contains(fake.prompts[0].User, "Clinical Involvement: Licensed psychologists review plans") {
		t.Fatalf("expected criteria in prompt")
	}
}

func TestClampConfidence(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{in: 0.5, want: 0.5},
		{in: -1, want: 0},
		{in: 85, want: 0.85},
		{in: 250, want: 1},
	}
	for _, tt := range tests {
		if got := clampConfidence(tt.in); got != tt.want {
			t.Fatalf("clampConfidence(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHandlerValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(&Service{LLM: &fakeLLM{resp: validSuggestion}}).RegisterRoutes(router.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/business-models", bytes.NewBufferString(`{"serviceType":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var payload struct {
		Code    string       `json:"code"`
		Details []FieldIssue `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Code != "validation_error" || len(payload.Details) != 17 {
		t.Fatalf("expected 17 missing fields, got %s %d", payload.Code, len(payload.Details))
	}
}

func TestHandlerUpstreamError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(&Service{LLM: llm.PlaceholderClient{}}).RegisterRoutes(router.Group("/api/v1"))

	body, _ := json.Marshal(validCriteria())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/business-models", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	var payload respond.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Error != llm.DefaultUserMessage {
		t.Fatalf("unexpected message %q", payload.Error)
	}
}
