package usage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// consumeScript increments the counter unless that would pass the limit.
// KEYS[1] counter, ARGV[1] n, ARGV[2] limit, ARGV[3] ttl seconds.
// Returns the new count, or -1 when the limit would be exceeded.
var consumeScript = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
local n = tonumber(ARGV[1])
if current + n > tonumber(ARGV[2]) then
  return -1
end
local updated = redis.call("INCRBY", KEYS[1], n)
if updated == n then
  redis.call("EXPIRE", KEYS[1], ARGV[3])
end
return updated
`)

// refundScript decrements the counter without going below zero. A missing
// key means the window rolled over and there is nothing to give back.
// KEYS[1] counter, ARGV[1] n.
var refundScript = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "-1")
if current < 0 then
  return 0
end
local n = tonumber(ARGV[1])
if n > current then
  n = current
end
return redis.call("DECRBY", KEYS[1], n)
`)

// RedisStore keeps one counter per principal per UTC day.
type RedisStore struct {
	client redis.Cmdable
	policy Policy
	prefix string
	now    func() time.Time
}

// NewRedisStore constructs a Redis-backed usage store.
func NewRedisStore(client redis.Cmdable, policy Policy) *RedisStore {
	return &RedisStore{
		client: client,
		policy: policy,
		prefix: "triage:usage",
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *RedisStore) key(principal string, now time.Time) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, now.UTC().Format("2006-01-02"), principal)
}

// ttl keeps the key a little past the window so late reads still see it.
func (s *RedisStore) ttl(now time.Time) time.Duration {
	return nextReset(now).Sub(now) + time.Minute
}

func (s *RedisStore) EnsurePeriod(ctx context.Context, principal string) (Usage, error) {
	now := s.now()
	u := s.policy.fresh(now)
	raw, err := s.client.Get(ctx, s.key(principal, now)).Result()
	if errors.Is(err, redis.Nil) {
		return u, nil
	}
	if err != nil {
		return Usage{}, fmt.Errorf("redis get usage: %w", err)
	}
	used, err := strconv.Atoi(raw)
	if err != nil {
		return Usage{}, fmt.Errorf("redis usage counter %q: %w", raw, err)
	}
	u.Used = used
	return u, nil
}

func (s *RedisStore) Consume(ctx context.Context, principal string, n int) (Usage, error) {
	if n <= 0 {
		return s.EnsurePeriod(ctx, principal)
	}
	now := s.now()
	ttlSeconds := int(s.ttl(now) / time.Second)
	res, err := consumeScript.Run(ctx, s.client, []string{s.key(principal, now)}, n, s.policy.Limit, ttlSeconds).Int()
	if err != nil {
		return Usage{}, fmt.Errorf("redis consume usage: %w", err)
	}
	if res < 0 {
		return Usage{}, ErrLimitReached
	}
	u := s.policy.fresh(now)
	u.Used = res
	return u, nil
}

func (s *RedisStore) Refund(ctx context.Context, principal string, n int) (Usage, error) {
	if n <= 0 {
		return s.EnsurePeriod(ctx, principal)
	}
	now := s.now()
	res, err := refundScript.Run(ctx, s.client, []string{s.key(principal, now)}, n).Int()
	if err != nil {
		return Usage{}, fmt.Errorf("redis refund usage: %w", err)
	}
	u := s.policy.fresh(now)
	u.Used = res
	return u, nil
}

func (s *RedisStore) Reset(ctx context.Context, principal string) (Usage, error) {
	now := s.now()
	if err := s.client.Del(ctx, s.key(principal, now)).Err(); err != nil {
		return Usage{}, fmt.Errorf("redis reset usage: %w", err)
	}
	return s.policy.fresh(now), nil
}
