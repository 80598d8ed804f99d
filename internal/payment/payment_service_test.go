package payment_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"rahalatek/internal/payment"
	"rahalatek/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePaymentRepository struct {
	createFn             func(ctx context.Context, event *payment.Event) error
	listByCounterpartyFn func(ctx context.Context, key string) ([]payment.Event, error)
	findByIDFn           func(ctx context.Context, id string) (*payment.Event, error)
	approveFn            func(ctx context.Context, id string) error
}

func (f *fakePaymentRepository) WithTx(tx *sql.Tx) payment.Repository { return f }

func (f *fakePaymentRepository) Create(ctx context.Context, event *payment.Event) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakePaymentRepository) ListByCounterparty(ctx context.Context, key string) ([]payment.Event, error) {
	if f.listByCounterpartyFn != nil {
		return f.listByCounterpartyFn(ctx, key)
	}
	return nil, nil
}

func (f *fakePaymentRepository) FindByID(ctx context.Context, id string) (*payment.Event, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, apperror.ErrNotFound
}

func (f *fakePaymentRepository) Approve(ctx context.Context, id string) error {
	if f.approveFn != nil {
		return f.approveFn(ctx, id)
	}
	return nil
}

func validCreateRequest() payment.CreatePaymentRequest {
	return payment.CreatePaymentRequest{
		CounterpartyKey: "Acme Travel",
		Amount:          decimal.NewFromInt(400),
		Currency:        "USD",
		Direction:       "OUTGOING",
		OccurredAt:      "2026-07-01T12:00:00Z",
	}
}

func TestPaymentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("new events always start pending", func(t *testing.T) {
		repo := &fakePaymentRepository{
			createFn: func(ctx context.Context, event *payment.Event) error {
				assert.Equal(t, payment.StatusPending, event.Status)
				assert.Equal(t, payment.DirectionOutgoing, event.Direction)
				assert.Equal(t, "Acme Travel", event.CounterpartyKey)
				return nil
			},
		}
		svc := payment.NewService(nil, repo)

		resp, err := svc.Create(ctx, validCreateRequest())

		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "2026-07-01T12:00:00Z", resp.OccurredAt)
	})

	t.Run("a related voucher id is parsed and carried through", func(t *testing.T) {
		voucherID := uuid.New().String()
		req := validCreateRequest()
		req.RelatedVoucherID = &voucherID

		repo := &fakePaymentRepository{
			createFn: func(ctx context.Context, event *payment.Event) error {
				require.NotNil(t, event.RelatedVoucherID)
				assert.Equal(t, voucherID, event.RelatedVoucherID.String())
				return nil
			},
		}
		svc := payment.NewService(nil, repo)

		resp, err := svc.Create(ctx, req)

		require.NoError(t, err)
		require.NotNil(t, resp.RelatedVoucherID)
		assert.Equal(t, voucherID, *resp.RelatedVoucherID)
	})

	t.Run("rejects a zero amount", func(t *testing.T) {
		req := validCreateRequest()
		req.Amount = decimal.Zero

		svc := payment.NewService(nil, &fakePaymentRepository{})
		_, err := svc.Create(ctx, req)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})

	t.Run("rejects an unknown direction", func(t *testing.T) {
		req := validCreateRequest()
		req.Direction = "SIDEWAYS"

		svc := payment.NewService(nil, &fakePaymentRepository{})
		_, err := svc.Create(ctx, req)

		assert.Error(t, err)
	})

	t.Run("rejects a malformed related voucher id", func(t *testing.T) {
		bad := "not-a-uuid"
		req := validCreateRequest()
		req.RelatedVoucherID = &bad

		svc := payment.NewService(nil, &fakePaymentRepository{})
		_, err := svc.Create(ctx, req)

		assert.Error(t, err)
	})

	t.Run("rejects a non-RFC3339 timestamp", func(t *testing.T) {
		req := validCreateRequest()
		req.OccurredAt = "2026-07-01"

		svc := payment.NewService(nil, &fakePaymentRepository{})
		_, err := svc.Create(ctx, req)

		assert.Error(t, err)
	})
}

func TestPaymentService_Approve(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("returns the approved event", func(t *testing.T) {
		repo := &fakePaymentRepository{
			approveFn: func(ctx context.Context, gotID string) error {
				assert.Equal(t, id.String(), gotID)
				return nil
			},
			findByIDFn: func(ctx context.Context, gotID string) (*payment.Event, error) {
				return &payment.Event{
					ID:         id,
					Status:     payment.StatusApproved,
					Direction:  payment.DirectionIncoming,
					Amount:     decimal.NewFromInt(100),
					OccurredAt: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
				}, nil
			},
		}
		svc := payment.NewService(nil, repo)

		resp, err := svc.Approve(ctx, id.String())

		require.NoError(t, err)
		assert.Equal(t, "approved", resp.Status)
	})

	t.Run("approving an unknown event surfaces not found", func(t *testing.T) {
		repo := &fakePaymentRepository{
			approveFn: func(ctx context.Context, gotID string) error {
				return apperror.ErrNotFound
			},
		}
		svc := payment.NewService(nil, repo)

		_, err := svc.Approve(ctx, id.String())

		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestPaymentService_ListByCounterparty(t *testing.T) {
	ctx := context.Background()

	t.Run("maps every event for the key", func(t *testing.T) {
		repo := &fakePaymentRepository{
			listByCounterpartyFn: func(ctx context.Context, key string) ([]payment.Event, error) {
				assert.Equal(t, "Acme Travel", key)
				return []payment.Event{
					{ID: uuid.New(), Status: payment.StatusApproved},
					{ID: uuid.New(), Status: payment.StatusPending},
				}, nil
			},
		}
		svc := payment.NewService(nil, repo)

		resp, err := svc.ListByCounterparty(ctx, "Acme Travel")

		require.NoError(t, err)
		assert.Len(t, resp, 2)
	})

	t.Run("repository errors pass through", func(t *testing.T) {
		repo := &fakePaymentRepository{
			listByCounterpartyFn: func(ctx context.Context, key string) ([]payment.Event, error) {
				return nil, errors.New("db down")
			},
		}
		svc := payment.NewService(nil, repo)

		_, err := svc.ListByCounterparty(ctx, "Acme Travel")

		assert.Error(t, err)
	})
}
