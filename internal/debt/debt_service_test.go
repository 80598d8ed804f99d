package debt_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"rahalatek/internal/debt"
	debterrors "rahalatek/internal/debt/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeDebtRepository struct {
	withTxFn   func(tx *sql.Tx) debt.Repository
	createFn   func(ctx context.Context, record *debt.Record) error
	listFn     func(ctx context.Context, filter debt.ListFilter) ([]debt.Record, error)
	findByIDFn func(ctx context.Context, id string) (*debt.Record, error)
	updateFn   func(ctx context.Context, record *debt.Record) error
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeDebtRepository) WithTx(tx *sql.Tx) debt.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeDebtRepository) Create(ctx context.Context, record *debt.Record) error {
	if f.createFn != nil {
		return f.createFn(ctx, record)
	}
	return nil
}

func (f *fakeDebtRepository) List(ctx context.Context, filter debt.ListFilter) ([]debt.Record, error) {
	if f.listFn != nil {
		return f.listFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeDebtRepository) FindByID(ctx context.Context, id string) (*debt.Record, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, debterrors.ErrDebtNotFound
}

func (f *fakeDebtRepository) Update(ctx context.Context, record *debt.Record) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, record)
	}
	return nil
}

func (f *fakeDebtRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service debt.Service
	repo    *fakeDebtRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeDebtRepository{}
	svc := debt.NewService(db, repo)

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestDebtService_Create(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		expectTx(t, deps.sqlMock, true)

		deps.repo.createFn = func(ctx context.Context, record *debt.Record) error {
			assert.Equal(t, "Anatolia Tours", record.OfficeName)
			assert.True(t, record.Amount.Equal(decimal.NewFromInt(750)))
			assert.EqualValues(t, "EUR", record.Currency)
			assert.Equal(t, debt.TypeOwedToOffice, record.Type)
			assert.Equal(t, debt.StatusOpen, record.Status)
			assert.Nil(t, record.ClosedDate)
			return nil
		}

		resp, err := deps.service.Create(ctx, actorID, debt.CreateDebtRequest{
			OfficeName: "Anatolia Tours",
			Amount:     decimal.NewFromInt(750),
			Currency:   "EUR",
			Type:       debt.TypeOwedToOffice,
		})

		assert.NoError(t, err)
		assert.Equal(t, debt.StatusOpen, resp.Status)
		assert.Nil(t, resp.ClosedDate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())

		deps.repo.createFn = nil
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := deps.service.Create(ctx, actorID, debt.CreateDebtRequest{
			OfficeName: "Anatolia Tours",
			Amount:     decimal.NewFromInt(750),
			Currency:   "EUR",
			Type:       "OWED_SIDEWAYS",
		})

		assert.ErrorIs(t, err, debterrors.ErrInvalidDebtType)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := deps.service.Create(ctx, actorID, debt.CreateDebtRequest{
			OfficeName: "Anatolia Tours",
			Amount:     decimal.Zero,
			Currency:   "EUR",
			Type:       debt.TypeOwedToOffice,
		})

		assert.Error(t, err)
	})

	t.Run("invalid due date", func(t *testing.T) {
		due := "03/15/2026"
		_, err := deps.service.Create(ctx, actorID, debt.CreateDebtRequest{
			OfficeName: "Anatolia Tours",
			Amount:     decimal.NewFromInt(750),
			Currency:   "EUR",
			Type:       debt.TypeOwedToOffice,
			DueDate:    &due,
		})

		assert.Error(t, err)
	})
}

func TestDebtService_Lifecycle(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	record := &debt.Record{
		ID:         uuid.New(),
		OfficeName: "Anatolia Tours",
		Amount:     decimal.NewFromInt(750),
		Currency:   "EUR",
		Type:       debt.TypeOwedToOffice,
		Status:     debt.StatusOpen,
		CreatedBy:  uuid.New(),
	}

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*debt.Record, error) {
		if id == record.ID.String() {
			copied := *record
			return &copied, nil
		}
		return nil, debterrors.ErrDebtNotFound
	}
	deps.repo.updateFn = func(ctx context.Context, updated *debt.Record) error {
		*record = *updated
		return nil
	}

	t.Run("close sets closed date", func(t *testing.T) {
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Close(ctx, record.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, debt.StatusClosed, resp.Status)
		assert.NotNil(t, resp.ClosedDate)
		assert.NotNil(t, record.ClosedDate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("double close is rejected", func(t *testing.T) {
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Close(ctx, record.ID.String())

		assert.ErrorIs(t, err, debterrors.ErrAlreadyClosed)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("reopen clears closed date entirely", func(t *testing.T) {
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Reopen(ctx, record.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, debt.StatusOpen, resp.Status)
		assert.Nil(t, resp.ClosedDate)
		assert.Nil(t, record.ClosedDate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("reopen requires a closed record", func(t *testing.T) {
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Reopen(ctx, record.ID.String())

		assert.ErrorIs(t, err, debterrors.ErrNotClosed)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("delete", func(t *testing.T) {
		expectTx(t, deps.sqlMock, true)

		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, id string) error {
			deleted = true
			assert.Equal(t, record.ID.String(), id)
			return nil
		}

		err := deps.service.Delete(ctx, record.ID.String())

		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestDebtService_GetAll(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("passes filters through", func(t *testing.T) {
		deps.repo.listFn = func(ctx context.Context, filter debt.ListFilter) ([]debt.Record, error) {
			assert.Equal(t, "Anatolia", filter.Office)
			assert.Equal(t, debt.StatusOpen, filter.Status)
			assert.Equal(t, debt.TypeOwedFromOffice, filter.Type)
			return []debt.Record{
				{
					ID:         uuid.New(),
					OfficeName: "Anatolia Tours",
					Amount:     decimal.NewFromInt(750),
					Currency:   "EUR",
					Type:       debt.TypeOwedFromOffice,
					Status:     debt.StatusOpen,
					CreatedBy:  uuid.New(),
					CreatedAt:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				},
			}, nil
		}

		resp, err := deps.service.GetAll(ctx, debt.ListDebtsFilterRequest{
			Office: "Anatolia",
			Status: debt.StatusOpen,
			Type:   debt.TypeOwedFromOffice,
		})

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Anatolia Tours", resp[0].OfficeName)

		deps.repo.listFn = nil
	})

	t.Run("rejects unknown status filter", func(t *testing.T) {
		_, err := deps.service.GetAll(ctx, debt.ListDebtsFilterRequest{Status: "ARCHIVED"})

		assert.ErrorIs(t, err, debterrors.ErrInvalidStatusFilter)
	})

	t.Run("repo error", func(t *testing.T) {
		deps.repo.listFn = func(ctx context.Context, filter debt.ListFilter) ([]debt.Record, error) {
			return nil, errors.New("db error")
		}

		_, err := deps.service.GetAll(ctx, debt.ListDebtsFilterRequest{})

		assert.Error(t, err)

		deps.repo.listFn = nil
	})
}
