package debt

import "github.com/shopspring/decimal"

type CreateDebtRequest struct {
	OfficeName string          `json:"office_name" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency" binding:"required"`
	Type       string          `json:"type" binding:"required"`
	Notes      string          `json:"notes"`
	DueDate    *string         `json:"due_date"` // YYYY-MM-DD
}

type UpdateDebtRequest struct {
	OfficeName string          `json:"office_name" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency" binding:"required"`
	Type       string          `json:"type" binding:"required"`
	Notes      string          `json:"notes"`
	DueDate    *string         `json:"due_date"`
}

type ListDebtsFilterRequest struct {
	Office string `form:"office"`
	Status string `form:"status"`
	Type   string `form:"type"`
}

type DebtResponse struct {
	ID         string          `json:"id"`
	OfficeName string          `json:"office_name"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Type       string          `json:"type"`
	Status     string          `json:"status"`
	Notes      string          `json:"notes,omitempty"`
	DueDate    *string         `json:"due_date"`
	ClosedDate *string         `json:"closed_date"`
	CreatedBy  string          `json:"created_by"`
	CreatedAt  string          `json:"created_at"`
}
