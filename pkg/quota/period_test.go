package quota_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tenderwatch/accesskit/pkg/quota"
)

func TestPeriodOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, quota.PeriodKey("2026-08"),
		quota.PeriodOf(time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)))

	// Period keys are derived in UTC regardless of the input zone.
	tokyo := time.FixedZone("JST", 9*3600)
	assert.Equal(t, quota.PeriodKey("2026-08"),
		quota.PeriodOf(time.Date(2026, 9, 1, 3, 0, 0, 0, tokyo)))
}

func TestPeriodResetAt(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		quota.PeriodKey("2026-08").ResetAt())

	// Year rollover.
	assert.Equal(t,
		time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		quota.PeriodKey("2026-12").ResetAt())
}

func TestPeriodContains(t *testing.T) {
	t.Parallel()

	period := quota.PeriodKey("2026-08")
	assert.True(t, period.Contains(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, period.Contains(time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))
}
