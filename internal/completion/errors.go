package completion

import (
	"context"
	"errors"
	"strings"
)

// ErrMissingLLM is returned when the service has no model client.
var ErrMissingLLM = errors.New("missing llm client")

// Failure codes attached to assessment failure logs.
const (
	ErrorCodeLLMTimeout        = "LLM_TIMEOUT"
	ErrorCodeLLMSchemaMismatch = "LLM_SCHEMA_MISMATCH"
	ErrorCodeLLMUnavailable    = "LLM_UNAVAILABLE"
	ErrorCodeInternal          = "INTERNAL_ERROR"
)

func classifyFailure(err error) (string, bool) {
	if err == nil {
		return ErrorCodeInternal, false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorCodeLLMTimeout, true
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "openai request timeout") {
		return ErrorCodeLLMTimeout, true
	}
	if strings.Contains(msg, "schema") || strings.Contains(msg, "llm output") {
		return ErrorCodeLLMSchemaMismatch, false
	}
	if strings.Contains(msg, "not configured") || strings.Contains(msg, "missing llm client") {
		return ErrorCodeLLMUnavailable, false
	}
	if shouldRetryLLM(err) {
		return ErrorCodeLLMUnavailable, true
	}
	return ErrorCodeInternal, false
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
