package usage

import "time"

const (
	defaultPlan  = "Daily"
	defaultLimit = 20
)

// Policy describes the quota applied to every principal.
type Policy struct {
	Plan  string
	Limit int
}

// DefaultPolicy returns the daily plan with the given limit. Non-positive
// limits fall back to the built-in default.
func DefaultPolicy(limit int) Policy {
	if limit <= 0 {
		limit = defaultLimit
	}
	return Policy{Plan: defaultPlan, Limit: limit}
}

func (p Policy) fresh(now time.Time) Usage {
	return Usage{
		Plan:     p.Plan,
		Limit:    p.Limit,
		Used:     0,
		ResetsAt: nextReset(now),
	}
}

// nextReset is the next UTC midnight after now.
func nextReset(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
}

func expired(u Usage, now time.Time) bool {
	return !now.Before(u.ResetsAt)
}
