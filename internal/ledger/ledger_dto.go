package ledger

import "github.com/shopspring/decimal"

type SupplierLedgerRequest struct {
	Currency string `form:"currency" binding:"required"`
	Year     *int   `form:"year"`
	Month    *int   `form:"month"` // zero-indexed
	Query    string `form:"q"`
}

type ClientRevenueRequest struct {
	Currency   string `form:"currency" binding:"required"`
	Year       *int   `form:"year"`
	Month      *int   `form:"month"`
	Query      string `form:"q"`
	ClientType string `form:"client_type"` // office | direct
}

// SupplierTotals is the pure reduction over the returned rows.
type SupplierTotals struct {
	Hotels       decimal.Decimal `json:"hotels"`
	Transfers    decimal.Decimal `json:"transfers"`
	Trips        decimal.Decimal `json:"trips"`
	Flights      decimal.Decimal `json:"flights"`
	Total        decimal.Decimal `json:"total"`
	Remaining    decimal.Decimal `json:"remaining"`
	VoucherCount int             `json:"voucher_count"`
}

type ClientTotals struct {
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Remaining    decimal.Decimal `json:"remaining"`
	VoucherCount int             `json:"voucher_count"`
}

// FailedSources lists counterparties whose payment history could not be
// fetched; their rows carry a remaining balance computed against zero
// payments.
type SupplierLedgerResponse struct {
	Currency      string         `json:"currency"`
	Rows          []Row          `json:"rows"`
	Totals        SupplierTotals `json:"totals"`
	FailedSources []string       `json:"failed_sources,omitempty"`
}

type ClientRevenueResponse struct {
	Currency      string       `json:"currency"`
	Rows          []ClientRow  `json:"rows"`
	Totals        ClientTotals `json:"totals"`
	FailedSources []string     `json:"failed_sources,omitempty"`
}
