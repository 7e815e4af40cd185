package questionnaires

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Issue codes reported in FieldIssue.Issue.
const (
	IssueMissing     = "missing"
	IssueNotANumber  = "not_a_number"
	IssueOutOfRange  = "out_of_range"
	IssueUnexpected  = "unexpected"
	IssueUnsupported = "unsupported"
	IssueTooLong     = "too_long"
)

// MaxUserDetailsLength bounds the optional free-text context, in characters.
const MaxUserDetailsLength = 2000

// FieldIssue describes one offending field.
type FieldIssue struct {
	Field   string `json:"field"`
	Issue   string `json:"issue"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+" "+issue.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the offending field names in report order.
func (e *ValidationError) Fields() []string {
	out := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		out = append(out, issue.Field)
	}
	return out
}

// Validate checks a raw submission against its questionnaire and returns the
// typed submission. Every offending field is reported, not just the first.
func Validate(raw RawSubmission) (Submission, error) {
	qType, ok := ParseType(raw.QuestionnaireType)
	if !ok {
		return nil, &ValidationError{Issues: []FieldIssue{{
			Field:   "questionnaireType",
			Issue:   IssueUnsupported,
			Message: fmt.Sprintf("must be one of %s, %s", TypePHQ9, TypeGAD7),
		}}}
	}

	answers := raw.Answers
	if answers == nil {
		answers = raw.QuestionnaireData
	}

	questions := Questions(qType)
	values := make([]int, len(questions))
	var issues []FieldIssue

	known := make(map[string]struct{}, len(questions))
	for i, q := range questions {
		known[q.ID] = struct{}{}
		field := "answers." + q.ID
		rawValue, present := answers[q.ID]
		if !present {
			issues = append(issues, FieldIssue{Field: field, Issue: IssueMissing, Message: "is required"})
			continue
		}
		v, issue := parseAnswer(rawValue)
		if issue != nil {
			issue.Field = field
			issues = append(issues, *issue)
			continue
		}
		values[i] = v
	}

	var extras []string
	for key := range answers {
		if _, ok := known[key]; !ok {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	for _, key := range extras {
		issues = append(issues, FieldIssue{
			Field:   "answers." + key,
			Issue:   IssueUnexpected,
			Message: fmt.Sprintf("is not a %s question", qType),
		})
	}

	details := strings.TrimSpace(raw.UserDetails)
	if utf8.RuneCountInString(details) > MaxUserDetailsLength {
		issues = append(issues, FieldIssue{
			Field:   "userDetails",
			Issue:   IssueTooLong,
			Message: fmt.Sprintf("must be at most %d characters", MaxUserDetailsLength),
		})
	}

	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	switch qType {
	case TypePHQ9:
		var s PHQ9Submission
		copy(s.Answers[:], values)
		s.UserDetails = details
		return s, nil
	default:
		var s GAD7Submission
		copy(s.Answers[:], values)
		s.UserDetails = details
		return s, nil
	}
}

func parseAnswer(raw json.RawMessage) (int, *FieldIssue) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, &FieldIssue{Issue: IssueNotANumber, Message: "must be a number"}
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, &FieldIssue{Issue: IssueNotANumber, Message: "must be a number"}
	}
	n, err := num.Int64()
	if err != nil {
		return 0, &FieldIssue{Issue: IssueNotANumber, Message: "must be a whole number"}
	}
	if n < minAnswer || n > maxAnswer {
		return 0, &FieldIssue{
			Issue:   IssueOutOfRange,
			Message: fmt.Sprintf("must be between %d and %d", minAnswer, maxAnswer),
		}
	}
	return int(n), nil
}
