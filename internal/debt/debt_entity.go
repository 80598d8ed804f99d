package debt

import (
	"time"

	"rahalatek/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TypeOwedToOffice   = "OWED_TO_OFFICE"
	TypeOwedFromOffice = "OWED_FROM_OFFICE"

	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"
)

// Record is a manually tracked obligation, independent of any voucher.
// Lifecycle: OPEN -> CLOSED (sets ClosedDate) -> reopened (clears ClosedDate,
// back to OPEN) -> optionally deleted. No other transitions.
type Record struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OfficeName string          `gorm:"type:varchar(120);not null;index:idx_debt_office_status"`
	Amount     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Currency   domain.Currency `gorm:"type:varchar(3);not null"`
	Type       string          `gorm:"type:varchar(20);not null"`
	Status     string          `gorm:"type:varchar(10);not null;default:'OPEN';index:idx_debt_office_status"`
	Notes      string
	DueDate    *time.Time `gorm:"type:date"`
	ClosedDate *time.Time `gorm:"type:date"`
	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Record) TableName() string {
	return "debts"
}

func (r *Record) IsOpen() bool {
	return r.Status == StatusOpen
}
