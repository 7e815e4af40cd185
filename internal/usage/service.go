package usage

import (
	"context"
	"strings"
)

type store interface {
	EnsurePeriod(ctx context.Context, principal string) (Usage, error)
	Consume(ctx context.Context, principal string, n int) (Usage, error)
	Refund(ctx context.Context, principal string, n int) (Usage, error)
	Reset(ctx context.Context, principal string) (Usage, error)
}

// Service manages the daily model-call quota via an underlying store. Only
// counters are stored; submissions never reach this package.
type Service struct {
	store store
}

// NewService constructs a Service with an in-memory store.
func NewService(policy Policy) *Service {
	return &Service{store: newMemoryStore(policy)}
}

// NewStoreService constructs a Service over a Postgres or Redis store.
func NewStoreService(s store) *Service {
	return &Service{store: s}
}

// Get returns the current usage, starting a new window if the last expired.
func (s *Service) Get(ctx context.Context, principal string) (Usage, error) {
	if strings.TrimSpace(principal) == "" {
		return Usage{}, ErrMissingPrincipal
	}
	return s.store.EnsurePeriod(ctx, principal)
}

// Consume increments usage by n, or returns ErrLimitReached. The check and the
// increment are a single step in every store, so concurrent callers cannot
// overshoot the limit.
func (s *Service) Consume(ctx context.Context, principal string, n int) (Usage, error) {
	if strings.TrimSpace(principal) == "" {
		return Usage{}, ErrMissingPrincipal
	}
	return s.store.Consume(ctx, principal, n)
}

// Refund gives back n units taken by Consume. Usage never drops below zero,
// and a unit consumed in an earlier window is not carried into the new one.
func (s *Service) Refund(ctx context.Context, principal string, n int) (Usage, error) {
	if strings.TrimSpace(principal) == "" {
		return Usage{}, ErrMissingPrincipal
	}
	return s.store.Refund(ctx, principal, n)
}

// Reset sets usage to zero and restarts the window.
func (s *Service) Reset(ctx context.Context, principal string) (Usage, error) {
	if strings.TrimSpace(principal) == "" {
		return Usage{}, ErrMissingPrincipal
	}
	return s.store.Reset(ctx, principal)
}
