package llm

import "fmt"

// DefaultUserMessage is shown when the model call fails for any reason.
const DefaultUserMessage = "We couldn't generate recommendations right now. Please try again."

// UpstreamServiceError wraps a failed or unusable model call. Message is safe
// to show to end users; Err carries the cause for logs only.
type UpstreamServiceError struct {
	Op      string
	Message string
	Err     error
}

func (e *UpstreamServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: upstream service error", e.Op)
	}
	return fmt.Sprintf("%s: upstream service error: %v", e.Op, e.Err)
}

func (e *UpstreamServiceError) Unwrap() error {
	return e.Err
}

// UserMessage returns the user-safe message, falling back to DefaultUserMessage.
func (e *UpstreamServiceError) UserMessage() string {
	if e.Message == "" {
		return DefaultUserMessage
	}
	return e.Message
}

// Upstream builds an UpstreamServiceError for op with the default message.
func Upstream(op string, err error) *UpstreamServiceError {
	return &UpstreamServiceError{Op: op, Message: DefaultUserMessage, Err: err}
}
