package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/assessment_v1.txt
	promptAssessmentV1 string
	//go:embed prompts/triage_v1.txt
	promptTriageV1 string
	//go:embed prompts/business_v1.txt
	promptBusinessV1 string
	//go:embed prompts/smile_v1.txt
	promptSmileV1 string
	//go:embed prompts/fix_json.txt
	promptFixJSON string
)

// Prompt template names.
const (
	TemplateAssessment = "assessment"
	TemplateTriage     = "triage"
	TemplateBusiness   = "business"
	TemplateSmile      = "smile"
)

// SystemPromptJSON is the system message for every structured request.
const SystemPromptJSON = "You are a careful assistant. Respond with JSON only. No markdown. Never omit keys. Output must match the schema exactly."

// SystemPromptFixJSON is the system message for the repair request.
const SystemPromptFixJSON = "You are a JSON repair tool. Return only valid JSON that matches the schema exactly."

// PromptTemplate returns the template text and whether the name was recognized.
func PromptTemplate(name string) (string, bool) {
	switch name {
	case TemplateAssessment:
		return promptAssessmentV1, true
	case TemplateTriage:
		return promptTriageV1, true
	case TemplateBusiness:
		return promptBusinessV1, true
	case TemplateSmile:
		return promptSmileV1, true
	default:
		return "", false
	}
}

// Render fills {{KEY}} placeholders in the named template. Unknown names
// render as an empty string.
func Render(name string, vars map[string]string) string {
	template, ok := PromptTemplate(name)
	if !ok {
		return ""
	}
	return fill(template, vars)
}

// FixJSONUserPrompt asks the model to repair fix.Raw so it satisfies the
// original instructions.
func FixJSONUserPrompt(fix FixJSON) string {
	problem := strings.TrimSpace(fix.Problem)
	if problem == "" {
		problem = "output is not valid JSON"
	}
	return fill(promptFixJSON, map[string]string{"PROBLEM": problem, "RAW": fix.Raw})
}

func fill(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(template))
}
