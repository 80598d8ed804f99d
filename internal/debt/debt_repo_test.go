package debt_test

import (
	"context"
	"database/sql"
	"testing"

	"rahalatek/internal/debt"
	debterrors "rahalatek/internal/debt/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepoTest(t *testing.T) (debt.Repository, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return debt.NewRepository(gormDB), db, mock
}

func TestDebtRepository_TableName(t *testing.T) {
	t.Run("reads hit the debts table", func(t *testing.T) {
		repo, _, mock := setupRepoTest(t)
		id := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "debts" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByID(context.Background(), id.String())

		assert.ErrorIs(t, err, debterrors.ErrDebtNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("filtered listing hits the debts table", func(t *testing.T) {
		repo, _, mock := setupRepoTest(t)

		rows := sqlmock.NewRows([]string{"id", "office_name", "status"}).
			AddRow(uuid.New().String(), "Acme Travel", debt.StatusOpen)
		mock.ExpectQuery(`SELECT \* FROM "debts" WHERE status = \$1`).
			WithArgs(debt.StatusOpen).
			WillReturnRows(rows)

		records, err := repo.List(context.Background(), debt.ListFilter{Status: debt.StatusOpen})

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Acme Travel", records[0].OfficeName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDebtRepository_WithTx(t *testing.T) {
	t.Run("statements join the caller's transaction", func(t *testing.T) {
		repo, db, mock := setupRepoTest(t)
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "debts" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		tx, err := db.Begin()
		require.NoError(t, err)

		_, err = repo.WithTx(tx).FindByID(context.Background(), id.String())
		assert.ErrorIs(t, err, debterrors.ErrDebtNotFound)

		require.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
