package payment

import (
	"context"
	"database/sql"
	"time"

	"rahalatek/internal/domain"
	"rahalatek/internal/shared/apperror"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req CreatePaymentRequest) (PaymentResponse, error)
	ListByCounterparty(ctx context.Context, key string) ([]PaymentResponse, error)
	Approve(ctx context.Context, id string) (PaymentResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreatePaymentRequest) (PaymentResponse, error) {
	currency := domain.Currency(req.Currency)
	if !currency.IsValid() {
		return PaymentResponse{}, apperror.InvalidField("currency")
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return PaymentResponse{}, apperror.InvalidField("amount")
	}

	direction := Direction(req.Direction)
	if direction != DirectionOutgoing && direction != DirectionIncoming {
		return PaymentResponse{}, apperror.InvalidField("direction")
	}

	occurredAt, err := time.Parse(time.RFC3339, req.OccurredAt)
	if err != nil {
		return PaymentResponse{}, apperror.InvalidField("occurred_at")
	}

	var relatedID *uuid.UUID
	if req.RelatedVoucherID != nil && *req.RelatedVoucherID != "" {
		parsed, err := uuid.Parse(*req.RelatedVoucherID)
		if err != nil {
			return PaymentResponse{}, apperror.InvalidField("related_voucher_id")
		}
		relatedID = &parsed
	}

	event := &Event{
		ID:               uuid.New(),
		CounterpartyKey:  req.CounterpartyKey,
		Amount:           req.Amount,
		Currency:         currency,
		Status:           StatusPending,
		Direction:        direction,
		RelatedVoucherID: relatedID,
		OccurredAt:       occurredAt,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return PaymentResponse{}, err
	}

	return mapToResponse(*event), nil
}

func (s *service) ListByCounterparty(ctx context.Context, key string) ([]PaymentResponse, error) {
	events, err := s.repo.ListByCounterparty(ctx, key)
	if err != nil {
		return nil, err
	}

	resp := make([]PaymentResponse, len(events))
	for i, event := range events {
		resp[i] = mapToResponse(event)
	}
	return resp, nil
}

func (s *service) Approve(ctx context.Context, id string) (PaymentResponse, error) {
	if err := s.repo.Approve(ctx, id); err != nil {
		return PaymentResponse{}, err
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PaymentResponse{}, err
	}

	return mapToResponse(*event), nil
}

func mapToResponse(event Event) PaymentResponse {
	resp := PaymentResponse{
		ID:              event.ID.String(),
		CounterpartyKey: event.CounterpartyKey,
		Amount:          event.Amount,
		Currency:        event.Currency.String(),
		Status:          string(event.Status),
		Direction:       string(event.Direction),
		OccurredAt:      event.OccurredAt.Format(time.RFC3339),
	}
	if event.RelatedVoucherID != nil {
		v := event.RelatedVoucherID.String()
		resp.RelatedVoucherID = &v
	}
	return resp
}
