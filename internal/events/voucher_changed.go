package events

import "time"

const VoucherChangedTopic = "tour.ledger.voucher.v1"

// VoucherChangedEvent is published whenever a voucher is created, updated or
// deleted; the ledger cache consumer drops cached reports on it.
type VoucherChangedEvent struct {
	EventType  string    `json:"event_type"`
	VoucherID  string    `json:"voucher_id"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}
