package debt

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	debterrors "rahalatek/internal/debt/errors"
	"rahalatek/internal/domain"
	"rahalatek/internal/events"
	"rahalatek/internal/messaging/kafka"
	"rahalatek/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, actorID string, req CreateDebtRequest) (DebtResponse, error)
	GetAll(ctx context.Context, req ListDebtsFilterRequest) ([]DebtResponse, error)
	GetByID(ctx context.Context, id string) (DebtResponse, error)
	Update(ctx context.Context, id string, req UpdateDebtRequest) (DebtResponse, error)
	Close(ctx context.Context, id string) (DebtResponse, error)
	Reopen(ctx context.Context, id string) (DebtResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo, now: time.Now}
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, outbox kafka.OutboxRepository) Service {
	return &service{db: db, repo: repo, outbox: outbox, now: time.Now}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateDebtRequest) (DebtResponse, error) {
	createdBy, err := uuid.Parse(actorID)
	if err != nil {
		return DebtResponse{}, apperror.InvalidField("actor_id")
	}
	if err := validateDebtFields(req.Amount, req.Currency, req.Type); err != nil {
		return DebtResponse{}, err
	}
	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return DebtResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DebtResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record := &Record{
		ID:         uuid.New(),
		OfficeName: req.OfficeName,
		Amount:     req.Amount,
		Currency:   domain.Currency(req.Currency),
		Type:       req.Type,
		Status:     StatusOpen,
		Notes:      req.Notes,
		DueDate:    dueDate,
		CreatedBy:  createdBy,
	}

	if err := qtx.Create(ctx, record); err != nil {
		return DebtResponse{}, err
	}

	if err := s.stageChangeEvent(ctx, tx, "created", record); err != nil {
		return DebtResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DebtResponse{}, err
	}

	return mapToResponse(*record), nil
}

func (s *service) GetAll(ctx context.Context, req ListDebtsFilterRequest) ([]DebtResponse, error) {
	if req.Status != "" && req.Status != StatusOpen && req.Status != StatusClosed {
		return nil, debterrors.ErrInvalidStatusFilter
	}
	if req.Type != "" && req.Type != TypeOwedToOffice && req.Type != TypeOwedFromOffice {
		return nil, debterrors.ErrInvalidDebtType
	}

	records, err := s.repo.List(ctx, ListFilter{
		Office: req.Office,
		Status: req.Status,
		Type:   req.Type,
	})
	if err != nil {
		return nil, err
	}

	resp := make([]DebtResponse, len(records))
	for i, record := range records {
		resp[i] = mapToResponse(record)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DebtResponse, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DebtResponse{}, err
	}
	return mapToResponse(*record), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDebtRequest) (DebtResponse, error) {
	if err := validateDebtFields(req.Amount, req.Currency, req.Type); err != nil {
		return DebtResponse{}, err
	}
	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return DebtResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DebtResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DebtResponse{}, err
	}

	record.OfficeName = req.OfficeName
	record.Amount = req.Amount
	record.Currency = domain.Currency(req.Currency)
	record.Type = req.Type
	record.Notes = req.Notes
	record.DueDate = dueDate

	if err := qtx.Update(ctx, record); err != nil {
		return DebtResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DebtResponse{}, err
	}

	return mapToResponse(*record), nil
}

func (s *service) Close(ctx context.Context, id string) (DebtResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DebtResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DebtResponse{}, err
	}
	if record.Status == StatusClosed {
		return DebtResponse{}, debterrors.ErrAlreadyClosed
	}

	closedAt := s.now().UTC()
	record.Status = StatusClosed
	record.ClosedDate = &closedAt

	if err := qtx.Update(ctx, record); err != nil {
		return DebtResponse{}, err
	}

	if err := s.stageChangeEvent(ctx, tx, "closed", record); err != nil {
		return DebtResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DebtResponse{}, err
	}

	return mapToResponse(*record), nil
}

func (s *service) Reopen(ctx context.Context, id string) (DebtResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DebtResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DebtResponse{}, err
	}
	if record.Status != StatusClosed {
		return DebtResponse{}, debterrors.ErrNotClosed
	}

	// Back to OPEN with no trace of the closure.
	record.Status = StatusOpen
	record.ClosedDate = nil

	if err := qtx.Update(ctx, record); err != nil {
		return DebtResponse{}, err
	}

	if err := s.stageChangeEvent(ctx, tx, "reopened", record); err != nil {
		return DebtResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DebtResponse{}, err
	}

	return mapToResponse(*record), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.stageChangeEvent(ctx, tx, "deleted", record); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) stageChangeEvent(ctx context.Context, tx *sql.Tx, eventType string, record *Record) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.DebtChangedEvent{
		EventType:  eventType,
		DebtID:     record.ID.String(),
		OfficeName: record.OfficeName,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "debt_record",
		AggregateID:   record.ID.String(),
		EventType:     eventType,
		Topic:         events.DebtChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func validateDebtFields(amount decimal.Decimal, currency, debtType string) error {
	if !amount.IsPositive() {
		return apperror.InvalidField("amount")
	}
	if !domain.Currency(currency).IsValid() {
		return apperror.InvalidField("currency")
	}
	if debtType != TypeOwedToOffice && debtType != TypeOwedFromOffice {
		return debterrors.ErrInvalidDebtType
	}
	return nil
}

func parseOptionalDate(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *v)
	if err != nil {
		return nil, apperror.InvalidField("due_date")
	}
	return &t, nil
}

func mapToResponse(record Record) DebtResponse {
	resp := DebtResponse{
		ID:         record.ID.String(),
		OfficeName: record.OfficeName,
		Amount:     record.Amount,
		Currency:   record.Currency.String(),
		Type:       record.Type,
		Status:     record.Status,
		Notes:      record.Notes,
		CreatedBy:  record.CreatedBy.String(),
		CreatedAt:  record.CreatedAt.Format(time.RFC3339),
	}

	if record.DueDate != nil {
		v := record.DueDate.Format("2006-01-02")
		resp.DueDate = &v
	}
	if record.ClosedDate != nil {
		v := record.ClosedDate.Format("2006-01-02")
		resp.ClosedDate = &v
	}

	return resp
}
