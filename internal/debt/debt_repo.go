package debt

import (
	"context"
	"database/sql"
	"errors"

	debterrors "rahalatek/internal/debt/errors"

	"gorm.io/gorm"
)

type ListFilter struct {
	Office string
	Status string
	Type   string
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, record *Record) error
	List(ctx context.Context, filter ListFilter) ([]Record, error)
	FindByID(ctx context.Context, id string) (*Record, error)
	Update(ctx context.Context, record *Record) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, record *Record) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Record, error) {
	query := r.db.WithContext(ctx).Model(&Record{})

	if filter.Office != "" {
		query = query.Where("office_name ILIKE ?", "%"+filter.Office+"%")
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var records []Record
	err := query.Order("created_at DESC").Find(&records).Error
	return records, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Record, error) {
	var record Record
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, debterrors.ErrDebtNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) Update(ctx context.Context, record *Record) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Record{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return debterrors.ErrDebtNotFound
	}
	return nil
}
