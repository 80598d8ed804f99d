package events

import "time"

const DebtChangedTopic = "tour.ledger.debt.v1"

// DebtChangedEvent tracks the lifecycle of a manually recorded obligation.
type DebtChangedEvent struct {
	EventType  string    `json:"event_type"` // created | closed | reopened | deleted
	DebtID     string    `json:"debt_id"`
	OfficeName string    `json:"office_name"`
	OccurredAt time.Time `json:"occurred_at"`
}
