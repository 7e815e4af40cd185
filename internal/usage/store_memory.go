package usage

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu     sync.Mutex
	policy Policy
	now    func() time.Time
	data   map[string]Usage
}

func newMemoryStore(policy Policy) *memoryStore {
	return &memoryStore{
		policy: policy,
		now:    func() time.Time { return time.Now().UTC() },
		data:   make(map[string]Usage),
	}
}

func (s *memoryStore) EnsurePeriod(ctx context.Context, principal string) (Usage, error) {
	if err := ctx.Err(); err != nil {
		return Usage{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLocked(principal), nil
}

func (s *memoryStore) ensureLocked(principal string) Usage {
	now := s.now()
	u, ok := s.data[principal]
	if !ok || expired(u, now) {
		u = s.policy.fresh(now)
	}
	s.data[principal] = u
	return u
}

func (s *memoryStore) Consume(ctx context.Context, principal string, n int) (Usage, error) {
	if err := ctx.Err(); err != nil {
		return Usage{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.ensureLocked(principal)
	if n <= 0 {
		return u, nil
	}
	if u.Used+n > u.Limit {
		return Usage{}, ErrLimitReached
	}
	u.Used += n
	s.data[principal] = u
	return u, nil
}

func (s *memoryStore) Refund(ctx context.Context, principal string, n int) (Usage, error) {
	if err := ctx.Err(); err != nil {
		return Usage{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.ensureLocked(principal)
	if n <= 0 {
		return u, nil
	}
	u.Used = max(u.Used-n, 0)
	s.data[principal] = u
	return u, nil
}

func (s *memoryStore) Reset(ctx context.Context, principal string) (Usage, error) {
	if err := ctx.Err(); err != nil {
		return Usage{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.policy.fresh(s.now())
	s.data[principal] = u
	return u, nil
}
