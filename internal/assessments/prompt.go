package assessments

import (
	"fmt"
	"strconv"
	"strings"

	"triage-backend/internal/llm"
	"triage-backend/internal/questionnaires"
)

func buildAssessmentPrompt(sub questionnaires.Submission, res questionnaires.ScoreResult, model string) llm.Prompt {
	return llm.Prompt{
		Name:  llm.TemplateAssessment,
		User:  llm.Render(llm.TemplateAssessment, promptVars(sub, res)),
		Model: model,
	}
}

func buildTriagePrompt(sub questionnaires.Submission, res questionnaires.ScoreResult, model string) llm.Prompt {
	vars := promptVars(sub, res)
	vars["TRIAGE_LEVEL"] = string(res.Severity.TriageLevel())
	return llm.Prompt{
		Name:  llm.TemplateTriage,
		User:  llm.Render(llm.TemplateTriage, vars),
		Model: model,
	}
}

func promptVars(sub questionnaires.Submission, res questionnaires.ScoreResult) map[string]string {
	details := strings.TrimSpace(sub.Details())
	if details == "" {
		details = "(none)"
	}
	selfHarm := "no"
	if res.SelfHarmFlag {
		selfHarm = "yes"
	}
	return map[string]string{
		"QUESTIONNAIRE": string(sub.Type()),
		"SCORE":         strconv.Itoa(res.Score),
		"MAX_SCORE":     strconv.Itoa(res.MaxScore),
		"SEVERITY":      string(res.Severity),
		"SELF_HARM":     selfHarm,
		"ANSWERS":       formatAnswers(sub),
		"USER_DETAILS":  details,
	}
}

func formatAnswers(sub questionnaires.Submission) string {
	questions := questionnaires.Questions(sub.Type())
	values := sub.Values()
	lines := make([]string, 0, len(questions))
	for i, q := range questions {
		if i >= len(values) {
			break
		}
		lines = append(lines, fmt.Sprintf("- %s. %s: %s (%d)", q.ID, q.Text, questionnaires.AnswerLabel(values[i]), values[i]))
	}
	return strings.Join(lines, "\n")
}
