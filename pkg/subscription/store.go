package subscription

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence contract for subscription records.
type Store interface {
	// List returns all subscription records for the account, newest first.
	// Returns ErrSubscriptionNotFound if the account has no records.
	List(ctx context.Context, accountID uuid.UUID) ([]Subscription, error)

	// Save creates or updates a subscription record. Used by provisioning
	// and billing collaborators; the resolver itself never writes.
	Save(ctx context.Context, sub *Subscription) error
}
