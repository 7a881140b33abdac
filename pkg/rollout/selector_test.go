package rollout_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderwatch/accesskit/pkg/rollout"
)

func TestNewSelector(t *testing.T) {
	t.Parallel()

	t.Run("valid range", func(t *testing.T) {
		t.Parallel()

		for _, p := range []int{0, 1, 50, 99, 100} {
			sel, err := rollout.NewSelector(p)
			require.NoError(t, err)
			assert.Equal(t, p, sel.Percentage())
		}
	})

	t.Run("out of range", func(t *testing.T) {
		t.Parallel()

		_, err := rollout.NewSelector(-1)
		require.Error(t, err)

		_, err = rollout.NewSelector(101)
		require.Error(t, err)
	})
}

func TestIsEnabledFor(t *testing.T) {
	t.Parallel()

	t.Run("zero percentage enables nobody", func(t *testing.T) {
		t.Parallel()

		sel, err := rollout.NewSelector(0)
		require.NoError(t, err)

		for n := 0; n < 100; n++ {
			assert.False(t, sel.IsEnabledFor(uuid.New()))
		}
	})

	t.Run("full percentage enables everybody", func(t *testing.T) {
		t.Parallel()

		sel, err := rollout.NewSelector(100)
		require.NoError(t, err)

		for n := 0; n < 100; n++ {
			assert.True(t, sel.IsEnabledFor(uuid.New()))
		}
	})

	t.Run("deterministic for the same account", func(t *testing.T) {
		t.Parallel()

		sel, err := rollout.NewSelector(37)
		require.NoError(t, err)

		accountID := uuid.New()
		first := sel.IsEnabledFor(accountID)
		for n := 0; n < 50; n++ {
			assert.Equal(t, first, sel.IsEnabledFor(accountID))
		}

		// A fresh selector with the same percentage must agree: bucketing
		// depends only on the account id and the hash function.
		other, err := rollout.NewSelector(37)
		require.NoError(t, err)
		assert.Equal(t, first, other.IsEnabledFor(accountID))
	})

	t.Run("cohort grows with percentage", func(t *testing.T) {
		t.Parallel()

		low, err := rollout.NewSelector(10)
		require.NoError(t, err)
		high, err := rollout.NewSelector(90)
		require.NoError(t, err)

		// An account inside the 10% cohort is always inside the 90% one;
		// buckets are a fixed hash value compared against the percentage.
		for n := 0; n < 200; n++ {
			accountID := uuid.New()
			if low.IsEnabledFor(accountID) {
				assert.True(t, high.IsEnabledFor(accountID))
			}
		}
	})

	t.Run("rough distribution", func(t *testing.T) {
		t.Parallel()

		sel, err := rollout.NewSelector(50)
		require.NoError(t, err)

		enabled := 0
		const total = 2000
		for n := 0; n < total; n++ {
			if sel.IsEnabledFor(uuid.New()) {
				enabled++
			}
		}

		// 50% +- 10 points is plenty for FNV over random UUIDs.
		assert.InDelta(t, total/2, enabled, total/10)
	})
}
