package domain

import "time"

// EventType identifies a committed state transition.
type EventType string

const (
	EventProjectCreated      EventType = "project.created"
	EventFunded              EventType = "project.funded"
	EventExcessRefunded      EventType = "project.excess_refunded"
	EventPayoutWithdrawn     EventType = "project.payout_withdrawn"
	EventRefunded            EventType = "project.refunded"
	EventCommitmentWithdrawn EventType = "project.commitment_withdrawn"
	EventFinalized           EventType = "project.finalized"
)

// Event is an observable notification fired once per committed transition.
// It is emitted after the transition (including any transfer) has committed
// and is never consumed by the engine itself.
type Event struct {
	Type      EventType `json:"type"`
	ProjectID uint64    `json:"project_id"`
	// Account is the contributor or creator the event concerns, when any.
	Account string `json:"account,omitempty"`
	// Amount is the accepted/surplus/payout/refund amount, when any.
	Amount int64 `json:"amount,omitempty"`
	// Success distinguishes finalize outcomes for EventFinalized.
	Success   bool      `json:"success,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
