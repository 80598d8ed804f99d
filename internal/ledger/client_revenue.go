package ledger

import (
	"sort"

	"rahalatek/internal/cycle"
	"rahalatek/internal/domain"
	"rahalatek/internal/voucher"

	"github.com/google/uuid"
)

type clientRowKey struct {
	clientKey string
	monthKey  string
}

// AggregateClientRevenue groups the same voucher set by paying party and
// month. The grouping key is the voucher's office name, or the client name
// when no office is attached (a direct client). Each voucher contributes its
// own TotalAmount exactly once, so no dedup bookkeeping is needed here.
func AggregateClientRevenue(vouchers []voucher.Voucher, currency domain.Currency) []ClientRow {
	rows := make(map[clientRowKey]*ClientRow)

	for i := range vouchers {
		v := &vouchers[i]
		if v.Currency != currency {
			continue
		}

		month := cycle.MonthOf(v.CreatedAt)
		key := clientRowKey{clientKey: v.ClientKey(), monthKey: month.Key()}

		row, ok := rows[key]
		if !ok {
			row = &ClientRow{
				ClientKey:      v.ClientKey(),
				IsDirectClient: v.IsDirectClient(),
				Year:           month.Year,
				Month:          month.Month,
				MonthKey:       month.Key(),
				Currency:       currency,
				voucherIDs:     make(map[uuid.UUID]struct{}),
			}
			rows[key] = row
		}

		row.TotalAmount = row.TotalAmount.Add(v.TotalAmount)
		row.VoucherCount++
		row.voucherIDs[v.ID] = struct{}{}
	}

	out := make([]ClientRow, 0, len(rows))
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
		return out[i].TotalAmount.GreaterThan(out[j].TotalAmount)
	})

	return out
}
