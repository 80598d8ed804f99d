package voucher

import (
	"time"

	"rahalatek/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

// Category names one service cost bucket of a voucher.
type Category string

const (
	CategoryHotels    Category = "hotels"
	CategoryTransfers Category = "transfers"
	CategoryTrips     Category = "trips"
	CategoryFlights   Category = "flights"
)

// Categories in stable presentation order.
var Categories = []Category{CategoryHotels, CategoryTransfers, CategoryTrips, CategoryFlights}

// ServiceLine is one supplier-office cost inside a voucher.
type ServiceLine struct {
	OfficeName string          `json:"office_name"`
	Price      decimal.Decimal `json:"price"`
}

// Voucher is a booked client transaction. OfficeName is the paying office;
// nil marks a direct client. The service cost breakdown exists in two
// historical shapes: the legacy ServicePayments map (one line per category)
// and the itemized per-category arrays. Both may be present on the same
// voucher; the itemized arrays are authoritative where they overlap.
type Voucher struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	VoucherNumber int64     `gorm:"uniqueIndex"`
	OfficeName    *string   `gorm:"index"`
	ClientName    string
	Currency      domain.Currency `gorm:"type:varchar(3);index"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status        string
	ArrivalDate   time.Time
	DepartureDate time.Time

	ServicePayments datatypes.JSONType[map[Category]ServiceLine] `gorm:"type:jsonb"`
	Hotels          datatypes.JSONSlice[ServiceLine]             `gorm:"type:jsonb"`
	Transfers       datatypes.JSONSlice[ServiceLine]             `gorm:"type:jsonb"`
	Trips           datatypes.JSONSlice[ServiceLine]             `gorm:"type:jsonb"`
	Flights         datatypes.JSONSlice[ServiceLine]             `gorm:"type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemizedLines returns the itemized service lines for one category.
func (v *Voucher) ItemizedLines(cat Category) []ServiceLine {
	switch cat {
	case CategoryHotels:
		return v.Hotels
	case CategoryTransfers:
		return v.Transfers
	case CategoryTrips:
		return v.Trips
	case CategoryFlights:
		return v.Flights
	}
	return nil
}

// LegacyLine returns the legacy service payment for a category, if any.
func (v *Voucher) LegacyLine(cat Category) (ServiceLine, bool) {
	payments := v.ServicePayments.Data()
	if payments == nil {
		return ServiceLine{}, false
	}
	line, ok := payments[cat]
	return line, ok
}

// IsDirectClient reports whether the voucher's payer has no office record.
func (v *Voucher) IsDirectClient() bool {
	return v.OfficeName == nil || *v.OfficeName == ""
}

// ClientKey is the grouping identity of the paying party: the office name
// when one exists, otherwise the client's own name.
func (v *Voucher) ClientKey() string {
	if !v.IsDirectClient() {
		return *v.OfficeName
	}
	return v.ClientName
}
