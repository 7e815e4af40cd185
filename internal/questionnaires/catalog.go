package questionnaires

import "strings"

// Type identifies a screening instrument.
type Type string

const (
	TypePHQ9 Type = "PHQ-9"
	TypeGAD7 Type = "GAD-7"
)

// QuestionDefinition is one item of a questionnaire.
type QuestionDefinition struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// AnswerOption is one point on the shared 0-3 frequency scale.
type AnswerOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Definition is the public view of a questionnaire.
type Definition struct {
	Type        Type                 `json:"type"`
	Title       string               `json:"title"`
	Prompt      string               `json:"prompt"`
	Questions   []QuestionDefinition `json:"questions"`
	Options     []AnswerOption       `json:"options"`
	MaxScore    int                  `json:"maxScore"`
	SelfHarmIDs []string             `json:"selfHarmItems,omitempty"`
}

const (
	minAnswer = 0
	maxAnswer = 3

	// phq9SelfHarmIndex is the position of "thoughts that you would be better off dead".
	phq9SelfHarmIndex = 8
)

var answerOptions = [...]AnswerOption{
	{Value: 0, Label: "Not at all"},
	{Value: 1, Label: "Several days"},
	{Value: 2, Label: "More than half the days"},
	{Value: 3, Label: "Nearly every day"},
}

var phq9Questions = [9]QuestionDefinition{
	{ID: "q1", Text: "Little interest or pleasure in doing things"},
	{ID: "q2", Text: "Feeling down, depressed, or hopeless"},
	{ID: "q3", Text: "Trouble falling or staying asleep, or sleeping too much"},
	{ID: "q4", Text: "Feeling tired or having little energy"},
	{ID: "q5", Text: "Poor appetite or overeating"},
	{ID: "q6", Text: "Feeling bad about yourself, or that you are a failure or have let yourself or your family down"},
	{ID: "q7", Text: "Trouble concentrating on things, such as reading the newspaper or watching television"},
	{ID: "q8", Text: "Moving or speaking so slowly that other people could have noticed. Or the opposite, being so fidgety or restless that you have been moving around a lot more than usual"},
	{ID: "q9", Text: "Thoughts that you would be better off dead, or of hurting yourself"},
}

var gad7Questions = [7]QuestionDefinition{
	{ID: "q1", Text: "Feeling nervous, anxious, or on edge"},
	{ID: "q2", Text: "Not being able to stop or control worrying"},
	{ID: "q3", Text: "Worrying too much about different things"},
	{ID: "q4", Text: "Trouble relaxing"},
	{ID: "q5", Text: "Being so restless that it is hard to sit still"},
	{ID: "q6", Text: "Becoming easily annoyed or irritable"},
	{ID: "q7", Text: "Feeling afraid as if something awful might happen"},
}

const periodPrompt = "Over the last 2 weeks, how often have you been bothered by any of the following problems?"

// Types lists the supported questionnaires in display order.
func Types() []Type {
	return []Type{TypePHQ9, TypeGAD7}
}

// ParseType resolves a questionnaire type case-insensitively, accepting
// "PHQ9"/"phq-9" spellings.
func ParseType(raw string) (Type, bool) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), "_", "-"))
	switch norm {
	case "PHQ-9", "PHQ9":
		return TypePHQ9, true
	case "GAD-7", "GAD7":
		return TypeGAD7, true
	default:
		return "", false
	}
}

// Questions returns a copy of the ordered questions for t.
func Questions(t Type) []QuestionDefinition {
	switch t {
	case TypePHQ9:
		out := phq9Questions
		return out[:]
	case TypeGAD7:
		out := gad7Questions
		return out[:]
	default:
		return nil
	}
}

// AnswerOptions returns a copy of the shared answer scale.
func AnswerOptions() []AnswerOption {
	out := answerOptions
	return out[:]
}

// Describe returns the catalog entry for t.
func Describe(t Type) (Definition, bool) {
	questions := Questions(t)
	if questions == nil {
		return Definition{}, false
	}
	def := Definition{
		Type:      t,
		Prompt:    periodPrompt,
		Questions: questions,
		Options:   AnswerOptions(),
		MaxScore:  len(questions) * maxAnswer,
	}
	switch t {
	case TypePHQ9:
		def.Title = "Patient Health Questionnaire (PHQ-9)"
		def.SelfHarmIDs = []string{phq9Questions[phq9SelfHarmIndex].ID}
	case TypeGAD7:
		def.Title = "Generalized Anxiety Disorder (GAD-7)"
	}
	return def, true
}

// Catalog returns every questionnaire definition.
func Catalog() []Definition {
	out := make([]Definition, 0, len(Types()))
	for _, t := range Types() {
		def, _ := Describe(t)
		out = append(out, def)
	}
	return out
}

// AnswerLabel returns the label for a 0-3 answer value.
func AnswerLabel(value int) string {
	if value < minAnswer || value > maxAnswer {
		return ""
	}
	return answerOptions[value].Label
}
