package ledger

import (
	"sort"

	"rahalatek/internal/cycle"
	"rahalatek/internal/domain"
	"rahalatek/internal/voucher"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type rowKey struct {
	officeName string
	monthKey   string
}

// contribution is one qualifying service line of one voucher, resolved after
// merging the legacy and itemized breakdowns.
type contribution struct {
	officeName string
	category   voucher.Category
	price      decimal.Decimal
}

// AggregateSupplierLedger folds vouchers of one currency into per-office,
// per-month ledger rows. Vouchers in other currencies are discarded; the
// legacy service-payment map and the itemized arrays are merged per
// (office, category) with the itemized data winning, so the same cost line
// is never counted twice. Rows come back sorted year desc, month desc,
// total desc.
func AggregateSupplierLedger(vouchers []voucher.Voucher, currency domain.Currency) []Row {
	rows := make(map[rowKey]*Row)

	for i := range vouchers {
		v := &vouchers[i]
		if v.Currency != currency {
			continue
		}

		month := cycle.MonthOf(v.CreatedAt)

		for _, contrib := range voucherContributions(v) {
			key := rowKey{officeName: contrib.officeName, monthKey: month.Key()}
			row, ok := rows[key]
			if !ok {
				row = &Row{
					OfficeName: contrib.officeName,
					Year:       month.Year,
					Month:      month.Month,
					MonthKey:   month.Key(),
					Currency:   currency,
					voucherIDs: make(map[uuid.UUID]struct{}),
				}
				rows[key] = row
			}

			row.addCategory(contrib.category, contrib.price)

			if _, counted := row.voucherIDs[v.ID]; !counted {
				row.voucherIDs[v.ID] = struct{}{}
				row.VoucherCount++
			}
		}
	}

	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		if out[i].Month != out[j].Month {
			return out[i].Month > out[j].Month
		}
		return out[i].Total.GreaterThan(out[j].Total)
	})

	return out
}

// voucherContributions resolves one voucher's qualifying service lines.
// Itemized lines are collected first; a legacy line only contributes when no
// itemized line already covers the same (office, category). Lines without an
// office, or with a non-positive price, never qualify.
func voucherContributions(v *voucher.Voucher) []contribution {
	var contribs []contribution

	type officeCategory struct {
		office   string
		category voucher.Category
	}
	covered := make(map[officeCategory]struct{})

	for _, cat := range voucher.Categories {
		for _, line := range v.ItemizedLines(cat) {
			if line.OfficeName == "" || !line.Price.IsPositive() {
				continue
			}
			contribs = append(contribs, contribution{
				officeName: line.OfficeName,
				category:   cat,
				price:      line.Price,
			})
			covered[officeCategory{office: line.OfficeName, category: cat}] = struct{}{}
		}
	}

	for _, cat := range voucher.Categories {
		line, ok := v.LegacyLine(cat)
		if !ok || line.OfficeName == "" || !line.Price.IsPositive() {
			continue
		}
		if _, dup := covered[officeCategory{office: line.OfficeName, category: cat}]; dup {
			continue
		}
		contribs = append(contribs, contribution{
			officeName: line.OfficeName,
			category:   cat,
			price:      line.Price,
		})
	}

	return contribs
}

func (r *Row) addCategory(cat voucher.Category, price decimal.Decimal) {
	switch cat {
	case voucher.CategoryHotels:
		r.Hotels = r.Hotels.Add(price)
	case voucher.CategoryTransfers:
		r.Transfers = r.Transfers.Add(price)
	case voucher.CategoryTrips:
		r.Trips = r.Trips.Add(price)
	case voucher.CategoryFlights:
		r.Flights = r.Flights.Add(price)
	}
	r.Total = r.Total.Add(price)
}
