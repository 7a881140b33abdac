package gate

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is one usage-history entry, appended after a committed action.
type Session struct {
	AccountID     uuid.UUID
	PlanID        string
	HistoryDays   int
	Export        bool
	SummaryTokens int
	OccurredAt    time.Time
}

// Recorder persists usage history. The session recorder is a collaborator
// outside this core; failures are logged by the gate and never affect the
// quota commit.
type Recorder interface {
	Record(ctx context.Context, session Session) error
}

// NopRecorder discards usage history. Default when no recorder is wired.
type NopRecorder struct{}

func (NopRecorder) Record(ctx context.Context, session Session) error { return nil }

// HintProvider supplies the human-actionable upgrade hint for a denial. The
// hint text comes from plan metadata owned by an external collaborator; the
// gate only forwards it.
type HintProvider interface {
	// UpgradeHint names the next plan tier that would satisfy the violated
	// constraint, or returns an empty string when there is none.
	UpgradeHint(planID string, reason Reason) string
}

// nopHints returns no hints.
type nopHints struct{}

func (nopHints) UpgradeHint(planID string, reason Reason) string { return "" }
