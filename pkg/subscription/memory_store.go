package subscription

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements Store in memory. Intended for tests and local
// development.
type MemoryStore struct {
	mu   sync.RWMutex
	subs map[uuid.UUID][]Subscription
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subs: make(map[uuid.UUID][]Subscription)}
}

func (s *MemoryStore) List(ctx context.Context, accountID uuid.UUID) ([]Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.subs[accountID]
	if !ok || len(records) == 0 {
		return nil, ErrSubscriptionNotFound
	}

	out := slices.Clone(records)
	slices.SortFunc(out, func(a, b Subscription) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, sub *Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.subs[sub.AccountID]
	for i, existing := range records {
		if existing.ID == sub.ID {
			records[i] = *sub
			return nil
		}
	}
	s.subs[sub.AccountID] = append(records, *sub)
	return nil
}
