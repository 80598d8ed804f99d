package voucher

import (
	"context"
	"database/sql"
	"errors"

	"rahalatek/internal/shared/apperror"

	"gorm.io/gorm"
)

type ListFilter struct {
	Year     *int
	Month    *int // zero-indexed
	Currency string
	Office   string
	Client   string
	Status   string
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, v *Voucher) error
	Update(ctx context.Context, v *Voucher) error
	List(ctx context.Context, filter ListFilter) ([]Voucher, error)
	FindByID(ctx context.Context, id string) (*Voucher, error)
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

func (r *repository) Create(ctx context.Context, v *Voucher) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) Update(ctx context.Context, v *Voucher) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Voucher, error) {
	query := r.db.WithContext(ctx).Model(&Voucher{})

	if filter.Year != nil {
		query = query.Where("EXTRACT(YEAR FROM created_at) = ?", *filter.Year)
	}
	if filter.Month != nil {
		query = query.Where("EXTRACT(MONTH FROM created_at) = ?", *filter.Month+1)
	}
	if filter.Currency != "" {
		query = query.Where("currency = ?", filter.Currency)
	}
	if filter.Office != "" {
		query = query.Where("office_name ILIKE ?", "%"+filter.Office+"%")
	}
	if filter.Client != "" {
		query = query.Where("client_name ILIKE ?", "%"+filter.Client+"%")
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var vouchers []Voucher
	err := query.Order("created_at DESC").Find(&vouchers).Error
	return vouchers, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Voucher, error) {
	var v Voucher
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Voucher{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
