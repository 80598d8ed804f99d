package ledger_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"rahalatek/internal/domain"
	"rahalatek/internal/ledger"
	"rahalatek/internal/payment"
	"rahalatek/internal/shared/apperror"
	"rahalatek/internal/voucher"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeVoucherRepository struct {
	listFn func(ctx context.Context, filter voucher.ListFilter) ([]voucher.Voucher, error)
}

func (f *fakeVoucherRepository) WithTx(tx *sql.Tx) voucher.Repository { return f }

func (f *fakeVoucherRepository) Create(ctx context.Context, v *voucher.Voucher) error { return nil }

func (f *fakeVoucherRepository) Update(ctx context.Context, v *voucher.Voucher) error { return nil }

func (f *fakeVoucherRepository) List(ctx context.Context, filter voucher.ListFilter) ([]voucher.Voucher, error) {
	if f.listFn != nil {
		return f.listFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeVoucherRepository) FindByID(ctx context.Context, id string) (*voucher.Voucher, error) {
	return nil, apperror.ErrNotFound
}

func (f *fakeVoucherRepository) Delete(ctx context.Context, id string) error { return nil }

type fakePaymentRepository struct {
	listByCounterpartyFn func(ctx context.Context, key string) ([]payment.Event, error)
}

func (f *fakePaymentRepository) WithTx(tx *sql.Tx) payment.Repository { return f }

func (f *fakePaymentRepository) Create(ctx context.Context, event *payment.Event) error { return nil }

func (f *fakePaymentRepository) ListByCounterparty(ctx context.Context, key string) ([]payment.Event, error) {
	if f.listByCounterpartyFn != nil {
		return f.listByCounterpartyFn(ctx, key)
	}
	return nil, nil
}

func (f *fakePaymentRepository) FindByID(ctx context.Context, id string) (*payment.Event, error) {
	return nil, apperror.ErrNotFound
}

func (f *fakePaymentRepository) Approve(ctx context.Context, id string) error { return nil }

func supplierVoucher(office string, hotels int64) voucher.Voucher {
	v := voucher.Voucher{
		ID:        uuid.New(),
		Currency:  domain.CurrencyUSD,
		CreatedAt: time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
	}
	v.Hotels = datatypes.JSONSlice[voucher.ServiceLine]{
		{OfficeName: office, Price: decimal.NewFromInt(hotels)},
	}
	return v
}

func TestLedgerService_SupplierLedger(t *testing.T) {
	ctx := context.Background()

	t.Run("settles each office against its approved outgoing payments", func(t *testing.T) {
		vouchers := &fakeVoucherRepository{
			listFn: func(ctx context.Context, filter voucher.ListFilter) ([]voucher.Voucher, error) {
				assert.Equal(t, "USD", filter.Currency)
				return []voucher.Voucher{supplierVoucher("Acme Travel", 1000)}, nil
			},
		}
		payments := &fakePaymentRepository{
			listByCounterpartyFn: func(ctx context.Context, key string) ([]payment.Event, error) {
				assert.Equal(t, "Acme Travel", key)
				return []payment.Event{
					{Status: payment.StatusApproved, Direction: payment.DirectionOutgoing, Amount: decimal.NewFromInt(400)},
					{Status: payment.StatusPending, Direction: payment.DirectionOutgoing, Amount: decimal.NewFromInt(999)},
				}, nil
			},
		}
		svc := ledger.NewService(vouchers, payments)

		resp, err := svc.SupplierLedger(ctx, ledger.SupplierLedgerRequest{Currency: "USD"})

		require.NoError(t, err)
		require.Len(t, resp.Rows, 1)
		assert.True(t, resp.Rows[0].Remaining.Equal(decimal.NewFromInt(600)), "got %s", resp.Rows[0].Remaining)
		assert.True(t, resp.Totals.Remaining.Equal(decimal.NewFromInt(600)))
		assert.Empty(t, resp.FailedSources)
	})

	t.Run("a failing payment source degrades to a zero-payment balance", func(t *testing.T) {
		vouchers := &fakeVoucherRepository{
			listFn: func(ctx context.Context, filter voucher.ListFilter) ([]voucher.Voucher, error) {
				return []voucher.Voucher{
					supplierVoucher("Acme Travel", 1000),
					supplierVoucher("Bosphorus Tours", 500),
				}, nil
			},
		}
		payments := &fakePaymentRepository{
			listByCounterpartyFn: func(ctx context.Context, key string) ([]payment.Event, error) {
				if key == "Bosphorus Tours" {
					return nil, errors.New("connection refused")
				}
				return []payment.Event{
					{Status: payment.StatusApproved, Direction: payment.DirectionOutgoing, Amount: decimal.NewFromInt(1000)},
				}, nil
			},
		}
		svc := ledger.NewService(vouchers, payments)

		resp, err := svc.SupplierLedger(ctx, ledger.SupplierLedgerRequest{Currency: "USD"})

		require.NoError(t, err)
		require.Len(t, resp.Rows, 2)
		assert.Equal(t, []string{"Bosphorus Tours"}, resp.FailedSources)

		for _, row := range resp.Rows {
			if row.OfficeName == "Bosphorus Tours" {
				assert.True(t, row.Remaining.Equal(decimal.NewFromInt(500)))
			} else {
				assert.True(t, row.Remaining.IsZero())
			}
		}
	})

	t.Run("rejects an unknown currency", func(t *testing.T) {
		svc := ledger.NewService(&fakeVoucherRepository{}, &fakePaymentRepository{})

		_, err := svc.SupplierLedger(ctx, ledger.SupplierLedgerRequest{Currency: "GBP"})

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})

	t.Run("rejects an out-of-range month", func(t *testing.T) {
		svc := ledger.NewService(&fakeVoucherRepository{}, &fakePaymentRepository{})

		_, err := svc.SupplierLedger(ctx, ledger.SupplierLedgerRequest{Currency: "USD", Month: intPtr(12)})

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})

	t.Run("voucher listing failure aborts the report", func(t *testing.T) {
		vouchers := &fakeVoucherRepository{
			listFn: func(ctx context.Context, filter voucher.ListFilter) ([]voucher.Voucher, error) {
				return nil, errors.New("db down")
			},
		}
		svc := ledger.NewService(vouchers, &fakePaymentRepository{})

		_, err := svc.SupplierLedger(ctx, ledger.SupplierLedgerRequest{Currency: "USD"})

		assert.Error(t, err)
	})
}

func TestLedgerService_ClientRevenue(t *testing.T) {
	ctx := context.Background()

	t.Run("only incoming payments tied to the row's vouchers offset revenue", func(t *testing.T) {
		v := voucher.Voucher{
			ID:          uuid.New(),
			ClientName:  "Jane Walker",
			Currency:    domain.CurrencyUSD,
			TotalAmount: decimal.NewFromInt(1000),
			CreatedAt:   time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		}
		unrelated := uuid.New()

		vouchers := &fakeVoucherRepository{
			listFn: func(ctx context.Context, filter voucher.ListFilter) ([]voucher.Voucher, error) {
				return []voucher.Voucher{v}, nil
			},
		}
		payments := &fakePaymentRepository{
			listByCounterpartyFn: func(ctx context.Context, key string) ([]payment.Event, error) {
				assert.Equal(t, "Jane Walker", key)
				return []payment.Event{
					{Status: payment.StatusApproved, Direction: payment.DirectionIncoming, Amount: decimal.NewFromInt(300), RelatedVoucherID: &v.ID},
					{Status: payment.StatusApproved, Direction: payment.DirectionIncoming, Amount: decimal.NewFromInt(999), RelatedVoucherID: &unrelated},
					{Status: payment.StatusApproved, Direction: payment.DirectionIncoming, Amount: decimal.NewFromInt(999)},
				}, nil
			},
		}
		svc := ledger.NewService(vouchers, payments)

		resp, err := svc.ClientRevenue(ctx, ledger.ClientRevenueRequest{Currency: "USD"})

		require.NoError(t, err)
		require.Len(t, resp.Rows, 1)
		assert.True(t, resp.Rows[0].Remaining.Equal(decimal.NewFromInt(700)), "got %s", resp.Rows[0].Remaining)
	})

	t.Run("rejects an unknown client type", func(t *testing.T) {
		svc := ledger.NewService(&fakeVoucherRepository{}, &fakePaymentRepository{})

		_, err := svc.ClientRevenue(ctx, ledger.ClientRevenueRequest{Currency: "USD", ClientType: "partner"})

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})
}
