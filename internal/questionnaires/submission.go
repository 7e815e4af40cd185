package questionnaires

import "encoding/json"

// Submission is a validated questionnaire submission. The concrete type is
// either PHQ9Submission or GAD7Submission; the fixed-size answer arrays keep
// the answer set aligned with the questionnaire's questions.
type Submission interface {
	Type() Type
	// Values returns the answers in question order.
	Values() []int
	Details() string
	sealed()
}

// PHQ9Submission holds the nine PHQ-9 answers, index 0 being q1.
type PHQ9Submission struct {
	Answers     [9]int
	UserDetails string
}

func (s PHQ9Submission) Type() Type      { return TypePHQ9 }
func (s PHQ9Submission) Values() []int   { out := s.Answers; return out[:] }
func (s PHQ9Submission) Details() string { return s.UserDetails }
func (PHQ9Submission) sealed()           {}

// GAD7Submission holds the seven GAD-7 answers, index 0 being q1.
type GAD7Submission struct {
	Answers     [7]int
	UserDetails string
}

func (s GAD7Submission) Type() Type      { return TypeGAD7 }
func (s GAD7Submission) Values() []int   { out := s.Answers; return out[:] }
func (s GAD7Submission) Details() string { return s.UserDetails }
func (GAD7Submission) sealed()           {}

// RawSubmission is the untrusted request payload. Answers stay raw so that
// non-numeric values can be reported per field.
type RawSubmission struct {
	QuestionnaireType string                     `json:"questionnaireType"`
	Answers           map[string]json.RawMessage `json:"answers"`
	// QuestionnaireData is the field name used by the web form.
	QuestionnaireData map[string]json.RawMessage `json:"questionnaireData,omitempty"`
	UserDetails       string                     `json:"userDetails,omitempty"`
}

// AnswerMap renders a submission's answers keyed by question id.
func AnswerMap(s Submission) map[string]int {
	questions := Questions(s.Type())
	values := s.Values()
	out := make(map[string]int, len(values))
	for i, q := range questions {
		if i < len(values) {
			out[q.ID] = values[i]
		}
	}
	return out
}
