package voucher

import "github.com/shopspring/decimal"

type ServiceLineRequest struct {
	OfficeName string          `json:"office_name" binding:"required"`
	Price      decimal.Decimal `json:"price" binding:"required"`
}

type CreateVoucherRequest struct {
	OfficeName    *string                               `json:"office_name"`
	ClientName    string                                `json:"client_name" binding:"required"`
	Currency      string                                `json:"currency" binding:"required"`
	TotalAmount   decimal.Decimal                       `json:"total_amount" binding:"required"`
	ArrivalDate   string                                `json:"arrival_date" binding:"required"`
	DepartureDate string                                `json:"departure_date" binding:"required"`

	ServicePayments map[string]ServiceLineRequest `json:"service_payments"`
	Hotels          []ServiceLineRequest          `json:"hotels"`
	Transfers       []ServiceLineRequest          `json:"transfers"`
	Trips           []ServiceLineRequest          `json:"trips"`
	Flights         []ServiceLineRequest          `json:"flights"`
}

type UpdateVoucherRequest struct {
	OfficeName    *string         `json:"office_name"`
	ClientName    string          `json:"client_name" binding:"required"`
	Currency      string          `json:"currency" binding:"required"`
	TotalAmount   decimal.Decimal `json:"total_amount" binding:"required"`
	Status        string          `json:"status" binding:"required"`
	ArrivalDate   string          `json:"arrival_date" binding:"required"`
	DepartureDate string          `json:"departure_date" binding:"required"`

	ServicePayments map[string]ServiceLineRequest `json:"service_payments"`
	Hotels          []ServiceLineRequest          `json:"hotels"`
	Transfers       []ServiceLineRequest          `json:"transfers"`
	Trips           []ServiceLineRequest          `json:"trips"`
	Flights         []ServiceLineRequest          `json:"flights"`
}

type ListVouchersFilterRequest struct {
	Year     *int   `form:"year"`
	Month    *int   `form:"month"` // zero-indexed
	Currency string `form:"currency"`
	Office   string `form:"office"`
	Client   string `form:"client"`
	Status   string `form:"status"`
}

type VoucherResponse struct {
	ID            string          `json:"id"`
	VoucherNumber int64           `json:"voucher_number"`
	OfficeName    *string         `json:"office_name,omitempty"`
	ClientName    string          `json:"client_name"`
	IsDirect      bool            `json:"is_direct_client"`
	Currency      string          `json:"currency"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
	ArrivalDate   string          `json:"arrival_date"`
	DepartureDate string          `json:"departure_date"`
	CreatedAt     string          `json:"created_at"`

	ServicePayments map[string]ServiceLine `json:"service_payments,omitempty"`
	Hotels          []ServiceLine          `json:"hotels,omitempty"`
	Transfers       []ServiceLine          `json:"transfers,omitempty"`
	Trips           []ServiceLine          `json:"trips,omitempty"`
	Flights         []ServiceLine          `json:"flights,omitempty"`
}
