package usage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGStore keeps counters in the llm_usage table.
type PGStore struct {
	DB     *sql.DB
	policy Policy
	now    func() time.Time
}

// NewPGStore constructs a Postgres-backed usage store.
func NewPGStore(db *sql.DB, policy Policy) *PGStore {
	return &PGStore{DB: db, policy: policy, now: func() time.Time { return time.Now().UTC() }}
}

func (s *PGStore) EnsurePeriod(ctx context.Context, principal string) (u Usage, err error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Usage{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	u, err = s.lockAndEnsure(ctx, tx, principal)
	if err != nil {
		return Usage{}, err
	}
	if err = tx.Commit(); err != nil {
		return Usage{}, err
	}
	return u, nil
}

func (s *PGStore) Consume(ctx context.Context, principal string, n int) (u Usage, err error) {
	if n <= 0 {
		return s.EnsurePeriod(ctx, principal)
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Usage{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	u, err = s.lockAndEnsure(ctx, tx, principal)
	if err != nil {
		return Usage{}, err
	}
	if u.Used+n > u.Limit {
		err = ErrLimitReached
		return Usage{}, err
	}
	u.Used += n
	if _, err = tx.ExecContext(ctx, `
UPDATE llm_usage SET used = $1 WHERE principal_id = $2`, u.Used, principal); err != nil {
		return Usage{}, err
	}
	if err = tx.Commit(); err != nil {
		return Usage{}, err
	}
	return u, nil
}

func (s *PGStore) Refund(ctx context.Context, principal string, n int) (u Usage, err error) {
	if n <= 0 {
		return s.EnsurePeriod(ctx, principal)
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Usage{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	u, err = s.lockAndEnsure(ctx, tx, principal)
	if err != nil {
		return Usage{}, err
	}
	u.Used = max(u.Used-n, 0)
	if _, err = tx.ExecContext(ctx, `
UPDATE llm_usage SET used = $1 WHERE principal_id = $2`, u.Used, principal); err != nil {
		return Usage{}, err
	}
	if err = tx.Commit(); err != nil {
		return Usage{}, err
	}
	return u, nil
}

func (s *PGStore) Reset(ctx context.Context, principal string) (Usage, error) {
	u := s.policy.fresh(s.now())
	if _, err := s.DB.ExecContext(ctx, `
INSERT INTO llm_usage (principal_id, plan, limit_amount, used, resets_at)
VALUES ($1, $2, $3, 0, $4)
ON CONFLICT (principal_id) DO UPDATE SET plan = EXCLUDED.plan, limit_amount = EXCLUDED.limit_amount, used = 0, resets_at = EXCLUDED.resets_at`,
		principal, u.Plan, u.Limit, u.ResetsAt); err != nil {
		return Usage{}, err
	}
	return u, nil
}

func (s *PGStore) lockAndEnsure(ctx context.Context, tx *sql.Tx, principal string) (Usage, error) {
	var u Usage
	row := tx.QueryRowContext(ctx, `
SELECT plan, limit_amount, used, resets_at FROM llm_usage WHERE principal_id = $1 FOR UPDATE`, principal)
	err := row.Scan(&u.Plan, &u.Limit, &u.Used, &u.ResetsAt)
	now := s.now()
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return Usage{}, err
		}
		u = s.policy.fresh(now)
		if _, err = tx.ExecContext(ctx, `
INSERT INTO llm_usage (principal_id, plan, limit_amount, used, resets_at) VALUES ($1, $2, $3, $4, $5)`,
			principal, u.Plan, u.Limit, u.Used, u.ResetsAt); err != nil {
			return Usage{}, err
		}
		return u, nil
	}

	if expired(u, now) {
		u = s.policy.fresh(now)
		if _, err = tx.ExecContext(ctx, `
UPDATE llm_usage SET plan = $1, limit_amount = $2, used = 0, resets_at = $3 WHERE principal_id = $4`,
			u.Plan, u.Limit, u.ResetsAt, principal); err != nil {
			return Usage{}, err
		}
	}
	return u, nil
}
