package compensation

import (
	"rahalatek/internal/cycle"

	"github.com/shopspring/decimal"
)

// Months are zero-indexed in every request and response, matching the
// internal month-key convention.

type UpsertSalaryRequest struct {
	Year     int             `json:"year" binding:"required"`
	Month    *int            `json:"month" binding:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" binding:"required"`
	Note     string          `json:"note"`
}

type UpsertBonusRequest struct {
	Year   int             `json:"year" binding:"required"`
	Month  *int            `json:"month" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
	// Currency may be omitted when creating a bonus for a month that already
	// has a salary entry; the bonus then inherits that entry's currency.
	Currency string `json:"currency"`
	Note     string `json:"note"`
}

type ScheduleNextCycleRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" binding:"required"`
	Note     string          `json:"note"`
}

type EntryResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	MonthKey    string          `json:"month_key"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Note        string          `json:"note,omitempty"`
	IsScheduled bool            `json:"is_scheduled"`
}

type ScheduledChangeResponse struct {
	Delta         decimal.Decimal `json:"delta"`
	IsIncrease    bool            `json:"is_increase"`
	NewTotal      decimal.Decimal `json:"new_total"`
	Currency      string          `json:"currency"`
	EffectiveDate string          `json:"effective_date"`
}

// CurrencyTotal is the historical reduction for one currency; scheduled
// entries are excluded until their month becomes current-or-past.
type CurrencyTotal struct {
	Currency string          `json:"currency"`
	Salary   decimal.Decimal `json:"salary"`
	Bonus    decimal.Decimal `json:"bonus"`
	Total    decimal.Decimal `json:"total"`
}

type TimelineResponse struct {
	UserID   string          `json:"user_id"`
	Salaries []EntryResponse `json:"salaries"`
	Bonuses  []EntryResponse `json:"bonuses"`
	Totals   []CurrencyTotal `json:"totals"`
}

type MonthOptionsResponse struct {
	Options []cycle.MonthRef `json:"options"`
}
