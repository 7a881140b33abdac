package quota

import "time"

// PeriodKey identifies one calendar-month usage window, e.g. "2026-08".
// Counters are keyed by (account, period) and are superseded, never deleted,
// when the period rolls over.
type PeriodKey string

// PeriodOf returns the period key for the calendar month containing t (UTC).
func PeriodOf(t time.Time) PeriodKey {
	return PeriodKey(t.UTC().Format("2006-01"))
}

// start returns the first instant of the period. The zero time is returned
// for malformed keys.
func (k PeriodKey) start() time.Time {
	t, err := time.Parse("2006-01", string(k))
	if err != nil {
		return time.Time{}
	}
	return t
}

// ResetAt returns the instant the period's counter stops applying: the first
// instant of the following month, UTC.
func (k PeriodKey) ResetAt() time.Time {
	return k.start().AddDate(0, 1, 0)
}

// Contains reports whether t falls inside the period.
func (k PeriodKey) Contains(t time.Time) bool {
	return PeriodOf(t) == k
}
