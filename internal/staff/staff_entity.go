package staff

import (
	"time"

	"rahalatek/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Member is a back-office user. BaseSalary/SalaryCurrency/SalaryDayOfMonth
// form the compensation baseline used when no monthly salary entry exists.
type Member struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName         string
	Email            string          `gorm:"uniqueIndex"`
	BaseSalary       decimal.Decimal `gorm:"type:numeric(14,2)"`
	SalaryCurrency   domain.Currency `gorm:"type:varchar(3)"`
	SalaryDayOfMonth int
	SalaryNotes      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Member) TableName() string {
	return "staff_members"
}

// Baseline is the compensation default for a user with no entry recorded for
// the current month.
type Baseline struct {
	Amount     decimal.Decimal `json:"amount"`
	Currency   domain.Currency `json:"currency"`
	DayOfMonth int             `json:"day_of_month"`
	Notes      string          `json:"notes"`
}
