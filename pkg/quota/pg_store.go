package quota

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore implements Store on PostgreSQL. Schema lives in
// migrations/00002_create_quota_counters.sql.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore returns a Store backed by the given connection pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Get(ctx context.Context, accountID uuid.UUID, period PeriodKey) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `
		SELECT count FROM quota_counters
		WHERE account_id = $1 AND period_key = $2`,
		accountID, string(period)).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, errors.Join(ErrStoreUnavailable, err)
	}
	return count, nil
}

// Increment relies on the upsert being a single statement: the row is locked
// for the duration of the update, so concurrent commits from the same
// account serialize inside PostgreSQL and no client-side read is involved.
func (s *PGStore) Increment(ctx context.Context, accountID uuid.UUID, period PeriodKey) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO quota_counters (account_id, period_key, count, updated_at)
		VALUES ($1, $2, 1, now())
		ON CONFLICT (account_id, period_key)
		DO UPDATE SET count = quota_counters.count + 1, updated_at = now()
		RETURNING count`,
		accountID, string(period)).Scan(&count)
	if err != nil {
		return 0, errors.Join(ErrStoreUnavailable, err)
	}
	return count, nil
}
