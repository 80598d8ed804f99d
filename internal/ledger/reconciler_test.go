package ledger_test

import (
	"testing"
	"time"

	"rahalatek/internal/domain"
	"rahalatek/internal/ledger"
	"rahalatek/internal/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func approvedEvent(amount int64, direction payment.Direction) payment.Event {
	return payment.Event{
		ID:         uuid.New(),
		Amount:     decimal.NewFromInt(amount),
		Currency:   domain.CurrencyUSD,
		Status:     payment.StatusApproved,
		Direction:  direction,
		OccurredAt: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRemaining(t *testing.T) {
	owed := decimal.NewFromInt(1000)

	t.Run("approved events of the matching direction reduce the balance", func(t *testing.T) {
		events := []payment.Event{
			approvedEvent(300, payment.DirectionOutgoing),
			approvedEvent(200, payment.DirectionOutgoing),
		}

		got := ledger.Remaining(owed, events, payment.DirectionOutgoing, nil)

		assert.True(t, got.Equal(decimal.NewFromInt(500)), "got %s", got)
	})

	t.Run("pending events never count", func(t *testing.T) {
		pending := approvedEvent(300, payment.DirectionOutgoing)
		pending.Status = payment.StatusPending

		got := ledger.Remaining(owed, []payment.Event{pending}, payment.DirectionOutgoing, nil)

		assert.True(t, got.Equal(owed))
	})

	t.Run("events of the opposite direction never count", func(t *testing.T) {
		events := []payment.Event{approvedEvent(300, payment.DirectionIncoming)}

		got := ledger.Remaining(owed, events, payment.DirectionOutgoing, nil)

		assert.True(t, got.Equal(owed))
	})

	t.Run("overpayment keeps its negative sign", func(t *testing.T) {
		events := []payment.Event{approvedEvent(1200, payment.DirectionOutgoing)}

		got := ledger.Remaining(owed, events, payment.DirectionOutgoing, nil)

		assert.True(t, got.Equal(decimal.NewFromInt(-200)), "got %s", got)
	})

	t.Run("voucher scoping only credits events tied to the given vouchers", func(t *testing.T) {
		inScope := uuid.New()
		outOfScope := uuid.New()

		tied := approvedEvent(400, payment.DirectionIncoming)
		tied.RelatedVoucherID = &inScope
		other := approvedEvent(999, payment.DirectionIncoming)
		other.RelatedVoucherID = &outOfScope
		untied := approvedEvent(999, payment.DirectionIncoming)

		scope := map[uuid.UUID]struct{}{inScope: {}}
		got := ledger.Remaining(owed, []payment.Event{tied, other, untied}, payment.DirectionIncoming, scope)

		assert.True(t, got.Equal(decimal.NewFromInt(600)), "got %s", got)
	})

	t.Run("recomputing over the same history is idempotent", func(t *testing.T) {
		events := []payment.Event{approvedEvent(250, payment.DirectionOutgoing)}

		first := ledger.Remaining(owed, events, payment.DirectionOutgoing, nil)
		second := ledger.Remaining(owed, events, payment.DirectionOutgoing, nil)

		assert.True(t, first.Equal(second))
	})
}
