package payment

import (
	"context"
	"database/sql"
	"errors"

	"rahalatek/internal/shared/apperror"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, event *Event) error
	// ListByCounterparty returns every payment event recorded against one
	// office or client key. An unknown key yields an empty slice, not an
	// error.
	ListByCounterparty(ctx context.Context, key string) ([]Event, error)
	FindByID(ctx context.Context, id string) (*Event, error)
	Approve(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) ListByCounterparty(ctx context.Context, key string) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("counterparty_key = ?", key).
		Order("occurred_at ASC").
		Find(&events).Error
	return events, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) Approve(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&Event{}).
		Where("id = ?", id).
		Update("status", StatusApproved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
