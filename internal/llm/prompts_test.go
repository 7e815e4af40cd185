package llm

import (
	"strings"
	"testing"
)

func TestPromptTemplatesEmbedded(t *testing.T) {
	for _, name := range []string{TemplateAssessment, TemplateTriage, TemplateBusiness, TemplateSmile} {
		tmpl, ok := PromptTemplate(name)
		if !ok || strings.TrimSpace(tmpl) == "" {
			t.Fatalf("expected template %q to be embedded", name)
		}
	}
	if _, ok := PromptTemplate("unknown"); ok {
		t.Fatalf("expected unknown template to be rejected")
	}
}

func TestRenderFillsPlaceholders(t *testing.T) {
	out := Render(TemplateAssessment, map[string]string{
		"QUESTIONNAIRE": "PHQ-9",
		"SCORE":         "12",
		"MAX_SCORE":     "27",
		"SEVERITY":      "Moderate",
		"SELF_HARM":     "no",
		"ANSWERS":       "- q1: Several days",
		"USER_DETAILS":  "none",
	})
	if strings.Contains(out, "{{") {
		t.Fatalf("unfilled placeholder in %q", out)
	}
	if !strings.Contains(out, "Total score: 12 out of 27") {
		t.Fatalf("expected score line, got %q", out)
	}
}

func TestFixJSONUserPromptCarriesRawAndProblem(t *testing.T) {
	out := FixJSONUserPrompt(FixJSON{Raw: `{"a":`, Problem: "unexpected end of JSON input"})
	if !strings.HasSuffix(out, `{"a":`) {
		t.Fatalf("expected raw output at the end, got %q", out)
	}
	if !strings.Contains(out, "unexpected end of JSON input") {
		t.Fatalf("expected problem in prompt, got %q", out)
	}
	if strings.Contains(out, "{{") {
		t.Fatalf("unfilled placeholder in %q", out)
	}
}

func TestFixJSONUserPromptDefaultsProblem(t *testing.T) {
	out := FixJSONUserPrompt(FixJSON{Raw: "nope"})
	if !strings.Contains(out, "not valid JSON") {
		t.Fatalf("expected default problem, got %q", out)
	}
}

func TestUpstreamServiceErrorHidesCause(t *testing.T) {
	err := Upstream("assessment", ErrNotConfigured)
	if err.UserMessage() != DefaultUserMessage {
		t.Fatalf("unexpected user message %q", err.UserMessage())
	}
	if strings.Contains(err.UserMessage(), ErrNotConfigured.Error()) {
		t.Fatalf("user message leaks cause")
	}
	if !strings.Contains(err.Error(), ErrNotConfigured.Error()) {
		t.Fatalf("expected cause in Error(), got %q", err.Error())
	}
}
