package quota

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type counterKey struct {
	accountID uuid.UUID
	period    PeriodKey
}

// MemoryStore implements Store in memory. The mutex serializes increments
// the same way the SQL upsert does in production. Intended for tests and
// local development.
type MemoryStore struct {
	mu       sync.RWMutex
	counters map[counterKey]int64
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: make(map[counterKey]int64)}
}

func (s *MemoryStore) Get(ctx context.Context, accountID uuid.UUID, period PeriodKey) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[counterKey{accountID, period}], nil
}

func (s *MemoryStore) Increment(ctx context.Context, accountID uuid.UUID, period PeriodKey) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := counterKey{accountID, period}
	s.counters[key]++
	return s.counters[key], nil
}
