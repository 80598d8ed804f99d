package compensation

import (
	"time"

	"rahalatek/internal/cycle"
	"rahalatek/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalaryEntry is one user's committed base pay for one calendar month.
// Month is zero-indexed. The (user, year, month) key is unique; months with
// no recorded change simply have no entry; absence is not a zero amount.
type SalaryEntry struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID       `gorm:"type:uuid;index:idx_salary_user_month,unique"`
	Year     int             `gorm:"index:idx_salary_user_month,unique"`
	Month    int             `gorm:"index:idx_salary_user_month,unique"`
	Amount   decimal.Decimal `gorm:"type:numeric(14,2)"`
	Currency domain.Currency `gorm:"type:varchar(3)"`
	Note     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *SalaryEntry) MonthRef() cycle.MonthRef {
	return cycle.MonthRef{Year: e.Year, Month: e.Month}
}

// BonusEntry exists independently of SalaryEntry under the same kind of
// month key, conventionally aligned to it.
type BonusEntry struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID       `gorm:"type:uuid;index:idx_bonus_user_month,unique"`
	Year     int             `gorm:"index:idx_bonus_user_month,unique"`
	Month    int             `gorm:"index:idx_bonus_user_month,unique"`
	Amount   decimal.Decimal `gorm:"type:numeric(14,2)"`
	Currency domain.Currency `gorm:"type:varchar(3)"`
	Note     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *BonusEntry) MonthRef() cycle.MonthRef {
	return cycle.MonthRef{Year: e.Year, Month: e.Month}
}
