package payment

import (
	"time"

	"rahalatek/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Direction string

const (
	DirectionOutgoing Direction = "OUTGOING" // paid to a supplier office
	DirectionIncoming Direction = "INCOMING" // received from a client
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// Event is a ledger-affecting payment. CounterpartyKey names the supplier
// office (OUTGOING) or the client key (INCOMING) the payment settles against.
// Only approved events count toward balances.
type Event struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CounterpartyKey  string          `gorm:"index"`
	Amount           decimal.Decimal `gorm:"type:numeric(14,2)"`
	Currency         domain.Currency `gorm:"type:varchar(3)"`
	Status           Status
	Direction        Direction
	RelatedVoucherID *uuid.UUID `gorm:"type:uuid"`
	OccurredAt       time.Time
	CreatedAt        time.Time
}

func (Event) TableName() string {
	return "payment_events"
}

func (e *Event) IsApproved() bool {
	return e.Status == StatusApproved
}
