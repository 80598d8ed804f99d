package ledger

import (
	"rahalatek/internal/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Remaining computes the balance still open after settling totalOwed against
// a counterparty's payment history. Only approved events of the requested
// direction count. When voucherIDs is non-nil (client-side reconciliation),
// an event must reference one of those vouchers to be credited; payments
// tied to other transactions never offset this balance. The sign of the
// result is preserved: negative means overpayment.
func Remaining(
	totalOwed decimal.Decimal,
	events []payment.Event,
	direction payment.Direction,
	voucherIDs map[uuid.UUID]struct{},
) decimal.Decimal {
	matched := decimal.Zero

	for i := range events {
		e := &events[i]
		if !e.IsApproved() {
			continue
		}
		if e.Direction != direction {
			continue
		}
		if voucherIDs != nil {
			if e.RelatedVoucherID == nil {
				continue
			}
			if _, ok := voucherIDs[*e.RelatedVoucherID]; !ok {
				continue
			}
		}
		matched = matched.Add(e.Amount)
	}

	return totalOwed.Sub(matched)
}
