package voucher

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"rahalatek/internal/domain"
	"rahalatek/internal/events"
	"rahalatek/internal/messaging/kafka"
	"rahalatek/internal/shared/apperror"
	"rahalatek/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Service interface {
	Create(ctx context.Context, actorID string, req CreateVoucherRequest) (VoucherResponse, error)
	GetAll(ctx context.Context, filter ListVouchersFilterRequest) ([]VoucherResponse, error)
	GetByID(ctx context.Context, id string) (VoucherResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateVoucherRequest) (VoucherResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	counters counter.Repository
	outbox   kafka.OutboxRepository
}

func NewService(db *sql.DB, repo Repository, counters counter.Repository) Service {
	return &service{db: db, repo: repo, counters: counters}
}

// NewServiceWithOutbox stages a VoucherChangedEvent in the same transaction as
// every mutation so cached ledger reports get invalidated downstream.
func NewServiceWithOutbox(db *sql.DB, repo Repository, counters counter.Repository, outbox kafka.OutboxRepository) Service {
	return &service{db: db, repo: repo, counters: counters, outbox: outbox}
}

func (s *service) Create(
	ctx context.Context,
	actorID string,
	req CreateVoucherRequest,
) (VoucherResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return VoucherResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	currency, arrival, departure, err := validateVoucherFields(req.Currency, req.TotalAmount, req.ArrivalDate, req.DepartureDate)
	if err != nil {
		return VoucherResponse{}, err
	}
	if err := validateServiceLines(req.ServicePayments, req.Hotels, req.Transfers, req.Trips, req.Flights); err != nil {
		return VoucherResponse{}, err
	}

	number, err := s.counters.GetNextValue(ctx, "voucher")
	if err != nil {
		return VoucherResponse{}, err
	}

	v := &Voucher{
		ID:            uuid.New(),
		VoucherNumber: number,
		OfficeName:    normalizeOffice(req.OfficeName),
		ClientName:    req.ClientName,
		Currency:      currency,
		TotalAmount:   req.TotalAmount,
		Status:        StatusPending,
		ArrivalDate:   arrival,
		DepartureDate: departure,

		ServicePayments: datatypes.NewJSONType(mapServicePayments(req.ServicePayments)),
		Hotels:          mapServiceLines(req.Hotels),
		Transfers:       mapServiceLines(req.Transfers),
		Trips:           mapServiceLines(req.Trips),
		Flights:         mapServiceLines(req.Flights),
	}

	if err := qtx.Create(ctx, v); err != nil {
		return VoucherResponse{}, err
	}

	if err := s.stageChangeEvent(ctx, tx, "voucher_created", v); err != nil {
		return VoucherResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return VoucherResponse{}, err
	}

	return mapToResponse(*v), nil
}

func (s *service) GetAll(ctx context.Context, filter ListVouchersFilterRequest) ([]VoucherResponse, error) {
	if filter.Month != nil && (*filter.Month < 0 || *filter.Month > 11) {
		return nil, apperror.InvalidField("month")
	}
	if filter.Currency != "" && !domain.Currency(filter.Currency).IsValid() {
		return nil, apperror.InvalidField("currency")
	}

	vouchers, err := s.repo.List(ctx, ListFilter{
		Year:     filter.Year,
		Month:    filter.Month,
		Currency: filter.Currency,
		Office:   filter.Office,
		Client:   filter.Client,
		Status:   filter.Status,
	})
	if err != nil {
		return nil, err
	}

	return mapToListResponse(vouchers), nil
}

func (s *service) GetByID(ctx context.Context, id string) (VoucherResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return VoucherResponse{}, err
	}
	return mapToResponse(*v), nil
}

func (s *service) Update(
	ctx context.Context,
	actorID, id string,
	req UpdateVoucherRequest,
) (VoucherResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return VoucherResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	currency, arrival, departure, err := validateVoucherFields(req.Currency, req.TotalAmount, req.ArrivalDate, req.DepartureDate)
	if err != nil {
		return VoucherResponse{}, err
	}
	if err := validateServiceLines(req.ServicePayments, req.Hotels, req.Transfers, req.Trips, req.Flights); err != nil {
		return VoucherResponse{}, err
	}
	if req.Status != StatusPending && req.Status != StatusConfirmed && req.Status != StatusCancelled {
		return VoucherResponse{}, apperror.InvalidField("status")
	}

	v, err := qtx.FindByID(ctx, id)
	if err != nil {
		return VoucherResponse{}, err
	}

	v.OfficeName = normalizeOffice(req.OfficeName)
	v.ClientName = req.ClientName
	v.Currency = currency
	v.TotalAmount = req.TotalAmount
	v.Status = req.Status
	v.ArrivalDate = arrival
	v.DepartureDate = departure
	v.ServicePayments = datatypes.NewJSONType(mapServicePayments(req.ServicePayments))
	v.Hotels = mapServiceLines(req.Hotels)
	v.Transfers = mapServiceLines(req.Transfers)
	v.Trips = mapServiceLines(req.Trips)
	v.Flights = mapServiceLines(req.Flights)

	if err := qtx.Update(ctx, v); err != nil {
		return VoucherResponse{}, err
	}

	if err := s.stageChangeEvent(ctx, tx, "voucher_updated", v); err != nil {
		return VoucherResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return VoucherResponse{}, err
	}

	return mapToResponse(*v), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	v, err := qtx.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.stageChangeEvent(ctx, tx, "voucher_deleted", v); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) stageChangeEvent(ctx context.Context, tx *sql.Tx, eventType string, v *Voucher) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.VoucherChangedEvent{
		EventType:  eventType,
		VoucherID:  v.ID.String(),
		Currency:   v.Currency.String(),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "voucher",
		AggregateID:   v.ID.String(),
		EventType:     eventType,
		Topic:         events.VoucherChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func validateVoucherFields(
	currencyRaw string,
	total decimal.Decimal,
	arrivalRaw, departureRaw string,
) (domain.Currency, time.Time, time.Time, error) {
	currency := domain.Currency(currencyRaw)
	if !currency.IsValid() {
		return "", time.Time{}, time.Time{}, apperror.InvalidField("currency")
	}

	if total.IsNegative() {
		return "", time.Time{}, time.Time{}, apperror.InvalidField("total_amount")
	}

	arrival, err := time.Parse("2006-01-02", arrivalRaw)
	if err != nil {
		return "", time.Time{}, time.Time{}, apperror.InvalidField("arrival_date")
	}
	departure, err := time.Parse("2006-01-02", departureRaw)
	if err != nil {
		return "", time.Time{}, time.Time{}, apperror.InvalidField("departure_date")
	}
	if departure.Before(arrival) {
		return "", time.Time{}, time.Time{}, apperror.InvalidField("departure_date")
	}

	return currency, arrival, departure, nil
}

func validateServiceLines(legacy map[string]ServiceLineRequest, lists ...[]ServiceLineRequest) error {
	for key, line := range legacy {
		if !isKnownCategory(key) {
			return apperror.InvalidField("service_payments")
		}
		if line.Price.IsNegative() {
			return apperror.InvalidField("service_payments")
		}
	}
	for _, list := range lists {
		for _, line := range list {
			if line.Price.IsNegative() {
				return apperror.InvalidField("price")
			}
		}
	}
	return nil
}

func isKnownCategory(key string) bool {
	for _, cat := range Categories {
		if string(cat) == key {
			return true
		}
	}
	return false
}

func normalizeOffice(office *string) *string {
	if office == nil || *office == "" {
		return nil
	}
	return office
}

func mapServicePayments(legacy map[string]ServiceLineRequest) map[Category]ServiceLine {
	if len(legacy) == 0 {
		return nil
	}
	out := make(map[Category]ServiceLine, len(legacy))
	for key, line := range legacy {
		out[Category(key)] = ServiceLine{OfficeName: line.OfficeName, Price: line.Price}
	}
	return out
}

func mapServiceLines(lines []ServiceLineRequest) []ServiceLine {
	if len(lines) == 0 {
		return nil
	}
	out := make([]ServiceLine, len(lines))
	for i, line := range lines {
		out[i] = ServiceLine{OfficeName: line.OfficeName, Price: line.Price}
	}
	return out
}

func mapToResponse(v Voucher) VoucherResponse {
	resp := VoucherResponse{
		ID:            v.ID.String(),
		VoucherNumber: v.VoucherNumber,
		OfficeName:    v.OfficeName,
		ClientName:    v.ClientName,
		IsDirect:      v.IsDirectClient(),
		Currency:      v.Currency.String(),
		TotalAmount:   v.TotalAmount,
		Status:        v.Status,
		ArrivalDate:   v.ArrivalDate.Format("2006-01-02"),
		DepartureDate: v.DepartureDate.Format("2006-01-02"),
		CreatedAt:     v.CreatedAt.Format(time.RFC3339),
		Hotels:        v.Hotels,
		Transfers:     v.Transfers,
		Trips:         v.Trips,
		Flights:       v.Flights,
	}

	if payments := v.ServicePayments.Data(); len(payments) > 0 {
		resp.ServicePayments = make(map[string]ServiceLine, len(payments))
		for cat, line := range payments {
			resp.ServicePayments[string(cat)] = line
		}
	}

	return resp
}

func mapToListResponse(vouchers []Voucher) []VoucherResponse {
	resp := make([]VoucherResponse, len(vouchers))
	for i, v := range vouchers {
		resp[i] = mapToResponse(v)
	}
	return resp
}
