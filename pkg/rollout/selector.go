package rollout

import (
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"
)

// Config holds the rollout settings read from the process environment.
type Config struct {
	// Percentage of accounts the new enforcement applies to (0-100).
	Percentage int `env:"ROLLOUT_PERCENTAGE" envDefault:"100"`
}

// Selector assigns accounts to the rollout cohort.
type Selector struct {
	percentage int
}

// NewSelector returns a Selector for the given percentage. Values outside
// 0-100 are rejected.
func NewSelector(percentage int) (*Selector, error) {
	if percentage < 0 || percentage > 100 {
		return nil, fmt.Errorf("rollout: percentage must be between 0 and 100, got %d", percentage)
	}
	return &Selector{percentage: percentage}, nil
}

// IsEnabledFor reports whether the account falls inside the rollout cohort.
// The same account always maps to the same bucket for a fixed percentage.
func (s *Selector) IsEnabledFor(accountID uuid.UUID) bool {
	if s.percentage <= 0 {
		return false
	}
	if s.percentage >= 100 {
		return true
	}
	return bucket(accountID) < s.percentage
}

// Percentage returns the configured rollout percentage.
func (s *Selector) Percentage() int {
	return s.percentage
}

// bucket hashes the account id to a stable value in [0, 100).
func bucket(accountID uuid.UUID) int {
	h := fnv.New32a()
	h.Write([]byte(accountID.String()))
	return int(h.Sum32() % 100)
}
