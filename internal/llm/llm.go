package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts LLM providers. Implementations return the model's JSON
// object verbatim; schema checks are the caller's job.
type Client interface {
	CompleteJSON(ctx context.Context, prompt Prompt) (json.RawMessage, error)
}

// Prompt is a single structured-output request.
type Prompt struct {
	// Name identifies the flow in logs, e.g. "assessment" or "triage".
	Name   string
	System string
	User   string
	// ImageDataURI, when set, is attached to the user message as an image part.
	ImageDataURI string
	// Model overrides the client's default model.
	Model string
}

type fixJSONKey struct{}

// FixJSON describes output that failed to decode or validate.
type FixJSON struct {
	Raw string
	// Problem is the decode or schema error, shown to the model.
	Problem string
}

// WithFixJSON returns a context signaling a fix-JSON retry for raw output
// that failed with problem.
func WithFixJSON(ctx context.Context, raw, problem string) context.Context {
	return context.WithValue(ctx, fixJSONKey{}, FixJSON{Raw: raw, Problem: problem})
}

// FixJSONFromContext returns the output to repair, if any.
func FixJSONFromContext(ctx context.Context) (FixJSON, bool) {
	fix, ok := ctx.Value(fixJSONKey{}).(FixJSON)
	return fix, ok
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM provider not configured")

// PlaceholderClient stands in when LLM_PROVIDER=none.
type PlaceholderClient struct{}

// CompleteJSON returns ErrNotConfigured.
func (PlaceholderClient) CompleteJSON(ctx context.Context, prompt Prompt) (json.RawMessage, error) {
	_ = ctx
	_ = prompt
	return nil, ErrNotConfigured
}
