package domain

// Currency is a hard partition key: amounts in different currencies are never
// summed together anywhere in this service.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyTRY Currency = "TRY"
)

func (c Currency) IsValid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyTRY:
		return true
	}
	return false
}

func (c Currency) String() string {
	return string(c)
}
