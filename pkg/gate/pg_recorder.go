package gate

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRecorder implements Recorder on PostgreSQL. Schema lives in
// migrations/00003_create_usage_sessions.sql.
type PGRecorder struct {
	pool *pgxpool.Pool
}

// NewPGRecorder returns a Recorder backed by the given connection pool.
func NewPGRecorder(pool *pgxpool.Pool) *PGRecorder {
	return &PGRecorder{pool: pool}
}

func (r *PGRecorder) Record(ctx context.Context, session Session) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO usage_sessions (account_id, plan_id, history_days, export,
		                            summary_tokens, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		session.AccountID, session.PlanID, session.HistoryDays, session.Export,
		session.SummaryTokens, session.OccurredAt)
	if err != nil {
		return fmt.Errorf("gate: record usage session: %w", err)
	}
	return nil
}
