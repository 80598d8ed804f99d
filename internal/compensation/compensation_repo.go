package compensation

import (
	"context"
	"database/sql"
	"errors"

	compensationerrors "rahalatek/internal/compensation/errors"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	FindSalary(ctx context.Context, userID string, year, month int) (*SalaryEntry, error)
	ListSalaries(ctx context.Context, userID string) ([]SalaryEntry, error)
	CreateSalary(ctx context.Context, entry *SalaryEntry) error
	UpdateSalary(ctx context.Context, entry *SalaryEntry) error
	DeleteSalary(ctx context.Context, userID string, year, month int) error

	FindBonus(ctx context.Context, userID string, year, month int) (*BonusEntry, error)
	ListBonuses(ctx context.Context, userID string) ([]BonusEntry, error)
	CreateBonus(ctx context.Context, entry *BonusEntry) error
	UpdateBonus(ctx context.Context, entry *BonusEntry) error
	DeleteBonus(ctx context.Context, userID string, year, month int) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds the session to the caller's transaction so statements join
// the BeginTx/Commit bracket held by the service.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{db: db}
}

func (r *repository) FindSalary(ctx context.Context, userID string, year, month int) (*SalaryEntry, error) {
	var entry SalaryEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, compensationerrors.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) ListSalaries(ctx context.Context, userID string) ([]SalaryEntry, error) {
	var entries []SalaryEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("year DESC, month DESC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) CreateSalary(ctx context.Context, entry *SalaryEntry) error {
	return mapEntryError(r.db.WithContext(ctx).Create(entry).Error)
}

func (r *repository) UpdateSalary(ctx context.Context, entry *SalaryEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *repository) DeleteSalary(ctx context.Context, userID string, year, month int) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Delete(&SalaryEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return compensationerrors.ErrEntryNotFound
	}
	return nil
}

func (r *repository) FindBonus(ctx context.Context, userID string, year, month int) (*BonusEntry, error) {
	var entry BonusEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, compensationerrors.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) ListBonuses(ctx context.Context, userID string) ([]BonusEntry, error) {
	var entries []BonusEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("year DESC, month DESC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) CreateBonus(ctx context.Context, entry *BonusEntry) error {
	return mapEntryError(r.db.WithContext(ctx).Create(entry).Error)
}

func (r *repository) UpdateBonus(ctx context.Context, entry *BonusEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *repository) DeleteBonus(ctx context.Context, userID string, year, month int) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Delete(&BonusEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return compensationerrors.ErrEntryNotFound
	}
	return nil
}
