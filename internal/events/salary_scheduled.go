package events

import "time"

const SalaryScheduledTopic = "tour.compensation.schedule.v1"

// SalaryScheduledEvent announces a pay change pre-staged for the next cycle.
type SalaryScheduledEvent struct {
	EventType  string    `json:"event_type"`
	UserID     string    `json:"user_id"`
	Year       int       `json:"year"`
	Month      int       `json:"month"` // zero-indexed
	OccurredAt time.Time `json:"occurred_at"`
}
