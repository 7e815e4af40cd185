// Package completion runs quota-checked structured model calls.
package completion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"triage-backend/internal/llm"
	"triage-backend/internal/shared/metrics"
	"triage-backend/internal/shared/telemetry"
	"triage-backend/internal/usage"
)

// DefaultTimeout bounds a model call when Runner.Timeout is unset.
const DefaultTimeout = 60 * time.Second

// Runner performs one model call per request: it reserves a quota unit, makes
// a bounded call with one transient retry, and decodes with one repair
// attempt. The unit is refunded when the call fails. Failures come back as
// *llm.UpstreamServiceError.
type Runner struct {
	LLM     llm.Client
	Usage   *usage.Service
	Timeout time.Duration
}

// Run sends prompt and passes the raw output to decode. decode must reset
// its target on every call since it may run twice.
func (r Runner) Run(ctx context.Context, principal string, prompt llm.Prompt, decode func(json.RawMessage) error) error {
	op := prompt.Name
	start := time.Now()
	if r.LLM == nil {
		return fail(ctx, op, ErrMissingLLM, start)
	}
	if r.Usage != nil {
		if _, err := r.Usage.Consume(ctx, principal, 1); err != nil {
			if errors.Is(err, usage.ErrLimitReached) {
				metrics.IncQuotaRejected()
			}
			return err
		}
	}

	if err := r.call(ctx, op, prompt, decode); err != nil {
		r.refund(ctx, principal, op)
		return fail(ctx, op, err, start)
	}
	metrics.ObserveLLMDurationMs(durationMs(start))
	return nil
}

func (r Runner) call(ctx context.Context, op string, prompt llm.Prompt, decode func(json.RawMessage) error) error {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := newRetryingLLM(r.LLM, op, RequestIDFromContext(ctx))
	metrics.IncLLMRequest()
	raw, err := client.CompleteJSON(callCtx, prompt)
	if err != nil {
		return fmt.Errorf("llm %s: %w", op, err)
	}
	if err := decode(raw); err != nil {
		rawRetry, retryErr := client.CompleteJSON(llm.WithFixJSON(callCtx, string(raw), err.Error()), prompt)
		if retryErr != nil {
			return fmt.Errorf("llm %s retry: %w", op, retryErr)
		}
		if err := decode(rawRetry); err != nil {
			return fmt.Errorf("llm output invalid: %w", err)
		}
	}
	return nil
}

// refund returns the unit reserved for a failed call. It runs even when the
// request context is already done.
func (r Runner) refund(ctx context.Context, principal, op string) {
	if r.Usage == nil {
		return
	}
	refundCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if _, err := r.Usage.Refund(refundCtx, principal, 1); err != nil {
		telemetry.Warn("usage.refund_failed", map[string]any{
			"request_id": RequestIDFromContext(ctx),
			"op":         op,
			"error":      sanitizeError(err),
		})
	}
}

func fail(ctx context.Context, op string, err error, start time.Time) error {
	code, retryable := classifyFailure(err)
	metrics.IncLLMFailure()
	metrics.ObserveLLMDurationMs(durationMs(start))
	telemetry.Error("llm.failed", map[string]any{
		"request_id":  RequestIDFromContext(ctx),
		"op":          op,
		"error_code":  code,
		"retryable":   retryable,
		"error":       sanitizeError(err),
		"duration_ms": durationMs(start),
	})
	return llm.Upstream(op, err)
}

func durationMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
