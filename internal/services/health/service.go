package health

import (
	"context"
	"time"
)

// Pinger is satisfied by *sql.DB and redis clients wrapped to return an error.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Database states reported by Status.
const (
	DatabaseDisabled    = "disabled"
	DatabaseOK          = "ok"
	DatabaseUnavailable = "unavailable"
)

// Status is the health payload.
type Status struct {
	OK            bool   `json:"ok"`
	LLMConfigured bool   `json:"llmConfigured"`
	Database      string `json:"database"`
}

// Service encapsulates health-related checks.
type Service struct {
	llmConfigured bool
	db            Pinger
	timeout       time.Duration
}

// NewService constructs a new health service. db may be nil.
func NewService(llmConfigured bool, db Pinger) *Service {
	return &Service{llmConfigured: llmConfigured, db: db, timeout: 2 * time.Second}
}

// Status reports process health. An unreachable database does not make the
// service unhealthy since only the usage quota depends on it.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{OK: true, LLMConfigured: s.llmConfigured, Database: DatabaseDisabled}
	if s.db == nil {
		return st
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		st.Database = DatabaseUnavailable
		return st
	}
	st.Database = DatabaseOK
	return st
}
