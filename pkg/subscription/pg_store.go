package subscription

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore implements Store on PostgreSQL. Schema lives in
// migrations/00001_create_subscriptions.sql.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore returns a Store backed by the given connection pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) List(ctx context.Context, accountID uuid.UUID) ([]Subscription, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, account_id, plan_id, is_active, expires_at,
		       trial_started_at, trial_expires_at, created_at
		FROM subscriptions
		WHERE account_id = $1
		ORDER BY created_at DESC`, accountID)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var subs []Subscription
	for rows.Next() {
		var sub Subscription
		if err := rows.Scan(&sub.ID, &sub.AccountID, &sub.PlanID, &sub.IsActive,
			&sub.ExpiresAt, &sub.TrialStartedAt, &sub.TrialExpiresAt, &sub.CreatedAt); err != nil {
			return nil, errors.Join(ErrStoreUnavailable, err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	if len(subs) == 0 {
		return nil, ErrSubscriptionNotFound
	}
	return subs, nil
}

func (s *PGStore) Save(ctx context.Context, sub *Subscription) error {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO subscriptions (id, account_id, plan_id, is_active, expires_at,
		                           trial_started_at, trial_expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			plan_id = EXCLUDED.plan_id,
			is_active = EXCLUDED.is_active,
			expires_at = EXCLUDED.expires_at,
			trial_started_at = EXCLUDED.trial_started_at,
			trial_expires_at = EXCLUDED.trial_expires_at`,
		sub.ID, sub.AccountID, sub.PlanID, sub.IsActive, sub.ExpiresAt,
		sub.TrialStartedAt, sub.TrialExpiresAt, sub.CreatedAt)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// Get returns the most recently created record for the account.
func (s *PGStore) Get(ctx context.Context, accountID uuid.UUID) (*Subscription, error) {
	var sub Subscription
	err := s.pool.QueryRow(ctx, `
		SELECT id, account_id, plan_id, is_active, expires_at,
		       trial_started_at, trial_expires_at, created_at
		FROM subscriptions
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, accountID).
		Scan(&sub.ID, &sub.AccountID, &sub.PlanID, &sub.IsActive,
			&sub.ExpiresAt, &sub.TrialStartedAt, &sub.TrialExpiresAt, &sub.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return &sub, nil
}
