package staff

import (
	"context"
	"errors"

	"rahalatek/internal/shared/apperror"

	"gorm.io/gorm"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*Member, error)
	// GetBaseline returns the configured baseline salary for a user. A pay
	// day outside [1..31] is clamped to end-of-month by the cycle math, not
	// here.
	GetBaseline(ctx context.Context, userID string) (*Baseline, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id string) (*Member, error) {
	var member Member
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *repository) GetBaseline(ctx context.Context, userID string) (*Baseline, error) {
	member, err := r.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Baseline{
		Amount:     member.BaseSalary,
		Currency:   member.SalaryCurrency,
		DayOfMonth: member.SalaryDayOfMonth,
		Notes:      member.SalaryNotes,
	}, nil
}
