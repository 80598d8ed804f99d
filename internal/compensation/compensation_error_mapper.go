package compensation

import (
	"errors"
	"strings"

	compensationerrors "rahalatek/internal/compensation/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapEntryError converts a Postgres unique violation on the per-month key
// into the domain conflict error. The service always upserts, so this only
// fires when two creates race on the same key.
func mapEntryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && strings.HasPrefix(pgErr.ConstraintName, "idx_") {
			return compensationerrors.ErrEntryMonthOccupied
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") &&
		(strings.Contains(errMsg, "idx_salary_user_month") || strings.Contains(errMsg, "idx_bonus_user_month")) {
		return compensationerrors.ErrEntryMonthOccupied
	}

	return err
}
