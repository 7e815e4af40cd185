package assessments

import (
	"context"
	"encoding/json"
	"sync"

	"triage-backend/internal/llm"
	"triage-backend/internal/questionnaires"
)

// scriptedLLM replays responses in order; the last response repeats.
type scriptedLLM struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	calls     int
	prompts   []llm.Prompt
	fixes     []string
}

func (s *scriptedLLM) CompleteJSON(ctx context.Context, prompt llm.Prompt) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	s.prompts = append(s.prompts, prompt)
	if fix, ok := llm.FixJSONFromContext(ctx); ok {
		s.fixes = append(s.fixes, fix.Raw)
	}
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if len(s.responses) == 0 {
		return json.RawMessage(`{}`), nil
	}
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return json.RawMessage(s.responses[i]), nil
}

func (s *scriptedLLM) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type blockingLLM struct{}

func (blockingLLM) CompleteJSON(ctx context.Context, prompt llm.Prompt) (json.RawMessage, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

const validRecommendation = `{
  "analysis": "Your answers suggest moderate symptoms of depression.",
  "severity": "Mild",
  "score": 8,
  "recommendations": [{"therapistType": "Psychologist", "reason": "Talk therapy helps with moderate symptoms."}],
  "nextSteps": ["Book an appointment with your GP", " book an appointment with your GP ", ""]
}`

const validTriage = `{
  "triageLevel": "Mild",
  "selfHelpRecommendations": ["Keep a regular sleep schedule", "keep a regular sleep schedule", "Go for a daily walk"],
  "productServiceRecommendations": ["Online CBT program"],
  "crisisResources": ["Call a trusted friend"],
  "explanation": "Your answers point to significant anxiety."
}`

// phq9 builds a PHQ-9 submission from nine answers.
func phq9(answers ...int) questionnaires.PHQ9Submission {
	var s questionnaires.PHQ9Submission
	copy(s.Answers[:], answers)
	return s
}

func gad7(answers ...int) questionnaires.GAD7Submission {
	var s questionnaires.GAD7Submission
	copy(s.Answers[:], answers)
	return s
}
