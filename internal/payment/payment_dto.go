package payment

import "github.com/shopspring/decimal"

type CreatePaymentRequest struct {
	CounterpartyKey  string          `json:"counterparty_key" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	Currency         string          `json:"currency" binding:"required"`
	Direction        string          `json:"direction" binding:"required"`
	RelatedVoucherID *string         `json:"related_voucher_id"`
	OccurredAt       string          `json:"occurred_at" binding:"required"`
}

type PaymentResponse struct {
	ID               string          `json:"id"`
	CounterpartyKey  string          `json:"counterparty_key"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	Status           string          `json:"status"`
	Direction        string          `json:"direction"`
	RelatedVoucherID *string         `json:"related_voucher_id,omitempty"`
	OccurredAt       string          `json:"occurred_at"`
}
