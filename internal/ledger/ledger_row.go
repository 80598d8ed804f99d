package ledger

import (
	"rahalatek/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Row is one (office, month, currency) financial summary cell. It is derived
// per request and never persisted. Total always equals the sum of the four
// category subtotals; VoucherCount is the number of distinct vouchers that
// contributed, not the number of service lines.
type Row struct {
	OfficeName string          `json:"office_name"`
	Year       int             `json:"year"`
	Month      int             `json:"month"` // zero-indexed
	MonthKey   string          `json:"month_key"`
	Currency   domain.Currency `json:"currency"`

	Hotels    decimal.Decimal `json:"hotels"`
	Transfers decimal.Decimal `json:"transfers"`
	Trips     decimal.Decimal `json:"trips"`
	Flights   decimal.Decimal `json:"flights"`
	Total     decimal.Decimal `json:"total"`

	VoucherCount int             `json:"voucher_count"`
	Remaining    decimal.Decimal `json:"remaining"`

	voucherIDs map[uuid.UUID]struct{}
}

// VoucherIDs exposes the de-duplicated set of contributing voucher ids,
// used by client-side balance reconciliation.
func (r *Row) VoucherIDs() map[uuid.UUID]struct{} {
	return r.voucherIDs
}

// ClientRow is the client-facing counterpart of Row: the same voucher set
// grouped by paying party instead of supplier office, summing the vouchers'
// own totals rather than their service costs.
type ClientRow struct {
	ClientKey      string          `json:"client_key"`
	IsDirectClient bool            `json:"is_direct_client"`
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	MonthKey       string          `json:"month_key"`
	Currency       domain.Currency `json:"currency"`

	TotalAmount  decimal.Decimal `json:"total_amount"`
	VoucherCount int             `json:"voucher_count"`
	Remaining    decimal.Decimal `json:"remaining"`

	voucherIDs map[uuid.UUID]struct{}
}

func (r *ClientRow) VoucherIDs() map[uuid.UUID]struct{} {
	return r.voucherIDs
}
