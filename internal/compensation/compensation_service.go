package compensation

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"time"

	"rahalatek/internal/cycle"
	"rahalatek/internal/domain"
	"rahalatek/internal/events"
	"rahalatek/internal/messaging/kafka"
	"rahalatek/internal/shared/apperror"
	"rahalatek/internal/staff"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service interface {
	UpsertSalary(ctx context.Context, userID string, req UpsertSalaryRequest) (EntryResponse, error)
	UpsertBonus(ctx context.Context, userID string, req UpsertBonusRequest) (EntryResponse, error)
	ScheduleNextCycle(ctx context.Context, userID string, req ScheduleNextCycleRequest) (EntryResponse, error)
	DetectScheduledChange(ctx context.Context, userID string) (*ScheduledChangeResponse, error)
	DeleteSalary(ctx context.Context, userID string, year, month int) error
	DeleteBonus(ctx context.Context, userID string, year, month int) error
	Timeline(ctx context.Context, userID string) (TimelineResponse, error)
	MonthOptions(ctx context.Context, userID string) (MonthOptionsResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	staff  staff.Repository
	outbox kafka.OutboxRepository
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, staffRepo staff.Repository) Service {
	return &service{db: db, repo: repo, staff: staffRepo, now: time.Now}
}

// NewServiceWithOutbox additionally stages a SalaryScheduledEvent whenever a
// next-cycle change is pre-staged.
func NewServiceWithOutbox(db *sql.DB, repo Repository, staffRepo staff.Repository, outbox kafka.OutboxRepository) Service {
	return &service{db: db, repo: repo, staff: staffRepo, outbox: outbox, now: time.Now}
}

// NewServiceWithClock pins the wall clock; tests use it to place "now" in a
// known cycle.
func NewServiceWithClock(db *sql.DB, repo Repository, staffRepo staff.Repository, now func() time.Time) Service {
	return &service{db: db, repo: repo, staff: staffRepo, now: now}
}

func (s *service) UpsertSalary(
	ctx context.Context,
	userID string,
	req UpsertSalaryRequest,
) (EntryResponse, error) {
	userUUID, month, currency, err := validateEntryKey(userID, req.Year, req.Month, req.Currency, req.Amount)
	if err != nil {
		return EntryResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	entry, err := s.upsertSalaryEntry(ctx, qtx, userUUID, req.Year, month, req.Amount, currency, req.Note)
	if err != nil {
		return EntryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EntryResponse{}, err
	}

	return s.mapSalaryResponse(*entry), nil
}

// upsertSalaryEntry is the single logical upsert: edit in place when the
// month key is occupied, create otherwise. Both paths are externally
// indistinguishable.
func (s *service) upsertSalaryEntry(
	ctx context.Context,
	repo Repository,
	userID uuid.UUID,
	year, month int,
	amount decimal.Decimal,
	currency domain.Currency,
	note string,
) (*SalaryEntry, error) {
	entry, err := repo.FindSalary(ctx, userID.String(), year, month)
	if err == nil {
		entry.Amount = amount
		entry.Currency = currency
		entry.Note = note
		if err := repo.UpdateSalary(ctx, entry); err != nil {
			return nil, err
		}
		return entry, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	entry = &SalaryEntry{
		ID:       uuid.New(),
		UserID:   userID,
		Year:     year,
		Month:    month,
		Amount:   amount,
		Currency: currency,
		Note:     note,
	}
	if err := repo.CreateSalary(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) UpsertBonus(
	ctx context.Context,
	userID string,
	req UpsertBonusRequest,
) (EntryResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return EntryResponse{}, apperror.InvalidField("user_id")
	}
	month, err := validateMonth(req.Month)
	if err != nil {
		return EntryResponse{}, err
	}
	if req.Amount.IsNegative() {
		return EntryResponse{}, apperror.InvalidField("amount")
	}
	if req.Currency != "" && !domain.Currency(req.Currency).IsValid() {
		return EntryResponse{}, apperror.InvalidField("currency")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	entry, err := qtx.FindBonus(ctx, userID, req.Year, month)
	switch {
	case err == nil:
		// Edit in place. The inheritance rule never overrides the currency
		// of an existing bonus; an omitted currency keeps the stored one.
		entry.Amount = req.Amount
		entry.Note = req.Note
		if req.Currency != "" {
			entry.Currency = domain.Currency(req.Currency)
		}
		if err := qtx.UpdateBonus(ctx, entry); err != nil {
			return EntryResponse{}, err
		}

	case apperror.IsNotFound(err):
		currency := domain.Currency(req.Currency)
		if currency == "" {
			// New bonus inherits the currency of the matching salary entry.
			salary, salErr := qtx.FindSalary(ctx, userID, req.Year, month)
			if salErr != nil {
				if apperror.IsNotFound(salErr) {
					return EntryResponse{}, apperror.RequiredField("currency")
				}
				return EntryResponse{}, salErr
			}
			currency = salary.Currency
		}

		entry = &BonusEntry{
			ID:       uuid.New(),
			UserID:   userUUID,
			Year:     req.Year,
			Month:    month,
			Amount:   req.Amount,
			Currency: currency,
			Note:     req.Note,
		}
		if err := qtx.CreateBonus(ctx, entry); err != nil {
			return EntryResponse{}, err
		}

	default:
		return EntryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EntryResponse{}, err
	}

	return s.mapBonusResponse(*entry), nil
}

// ScheduleNextCycle pre-stages a raise or decrease: it writes the entry keyed
// to the month after now, leaving the current month untouched.
func (s *service) ScheduleNextCycle(
	ctx context.Context,
	userID string,
	req ScheduleNextCycleRequest,
) (EntryResponse, error) {
	next := cycle.NextCycle(s.now())

	userUUID, month, currency, err := validateEntryKey(userID, next.Year, &next.Month, req.Currency, req.Amount)
	if err != nil {
		return EntryResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	entry, err := s.upsertSalaryEntry(ctx, qtx, userUUID, next.Year, month, req.Amount, currency, req.Note)
	if err != nil {
		return EntryResponse{}, err
	}

	if err := s.stageScheduledEvent(ctx, tx, userID, next); err != nil {
		return EntryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EntryResponse{}, err
	}

	return s.mapSalaryResponse(*entry), nil
}

func (s *service) DetectScheduledChange(ctx context.Context, userID string) (*ScheduledChangeResponse, error) {
	now := s.now()
	current := cycle.CurrentCycle(now)
	next := cycle.NextCycle(now)

	baseline, err := s.staff.GetBaseline(ctx, userID)
	if err != nil {
		return nil, err
	}

	currentAmount := baseline.Amount
	if entry, err := s.repo.FindSalary(ctx, userID, current.Year, current.Month); err == nil {
		currentAmount = entry.Amount
	} else if !apperror.IsNotFound(err) {
		return nil, err
	}

	nextEntry, err := s.repo.FindSalary(ctx, userID, next.Year, next.Month)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	delta := nextEntry.Amount.Sub(currentAmount)
	if delta.IsZero() {
		return nil, nil
	}

	return &ScheduledChangeResponse{
		Delta:         delta.Abs(),
		IsIncrease:    delta.IsPositive(),
		NewTotal:      nextEntry.Amount,
		Currency:      nextEntry.Currency.String(),
		EffectiveDate: cycle.NextPayDate(baseline.DayOfMonth, now).Format("2006-01-02"),
	}, nil
}

func (s *service) DeleteSalary(ctx context.Context, userID string, year, month int) error {
	if month < 0 || month > 11 {
		return apperror.InvalidField("month")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Deleting a salary entry never touches the aligned bonus entry.
	if err := s.repo.WithTx(tx).DeleteSalary(ctx, userID, year, month); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) DeleteBonus(ctx context.Context, userID string, year, month int) error {
	if month < 0 || month > 11 {
		return apperror.InvalidField("month")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).DeleteBonus(ctx, userID, year, month); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) Timeline(ctx context.Context, userID string) (TimelineResponse, error) {
	salaries, err := s.repo.ListSalaries(ctx, userID)
	if err != nil {
		return TimelineResponse{}, err
	}
	bonuses, err := s.repo.ListBonuses(ctx, userID)
	if err != nil {
		return TimelineResponse{}, err
	}

	current := cycle.CurrentCycle(s.now())

	resp := TimelineResponse{
		UserID:   userID,
		Salaries: make([]EntryResponse, len(salaries)),
		Bonuses:  make([]EntryResponse, len(bonuses)),
	}

	totals := make(map[domain.Currency]*CurrencyTotal)
	totalFor := func(currency domain.Currency) *CurrencyTotal {
		t, ok := totals[currency]
		if !ok {
			t = &CurrencyTotal{Currency: currency.String()}
			totals[currency] = t
		}
		return t
	}

	for i, entry := range salaries {
		resp.Salaries[i] = s.mapSalaryResponse(entry)
		if !entry.MonthRef().After(current) {
			t := totalFor(entry.Currency)
			t.Salary = t.Salary.Add(entry.Amount)
		}
	}
	for i, entry := range bonuses {
		resp.Bonuses[i] = s.mapBonusResponse(entry)
		if !entry.MonthRef().After(current) {
			t := totalFor(entry.Currency)
			t.Bonus = t.Bonus.Add(entry.Amount)
		}
	}

	for _, t := range totals {
		t.Total = t.Salary.Add(t.Bonus)
		resp.Totals = append(resp.Totals, *t)
	}
	sort.Slice(resp.Totals, func(i, j int) bool {
		return resp.Totals[i].Currency < resp.Totals[j].Currency
	})

	return resp, nil
}

func (s *service) MonthOptions(ctx context.Context, userID string) (MonthOptionsResponse, error) {
	salaries, err := s.repo.ListSalaries(ctx, userID)
	if err != nil {
		return MonthOptionsResponse{}, err
	}
	bonuses, err := s.repo.ListBonuses(ctx, userID)
	if err != nil {
		return MonthOptionsResponse{}, err
	}

	refs := make([]cycle.MonthRef, 0, len(salaries)+len(bonuses))
	for _, entry := range salaries {
		refs = append(refs, entry.MonthRef())
	}
	for _, entry := range bonuses {
		refs = append(refs, entry.MonthRef())
	}

	return MonthOptionsResponse{Options: cycle.MonthOptions(refs, s.now())}, nil
}

func (s *service) stageScheduledEvent(ctx context.Context, tx *sql.Tx, userID string, next cycle.MonthRef) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.SalaryScheduledEvent{
		EventType:  "salary_scheduled",
		UserID:     userID,
		Year:       next.Year,
		Month:      next.Month,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "salary_entry",
		AggregateID:   userID,
		EventType:     "salary_scheduled",
		Topic:         events.SalaryScheduledTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) isScheduled(ref cycle.MonthRef) bool {
	return ref.After(cycle.CurrentCycle(s.now()))
}

func (s *service) mapSalaryResponse(entry SalaryEntry) EntryResponse {
	return EntryResponse{
		ID:          entry.ID.String(),
		UserID:      entry.UserID.String(),
		Year:        entry.Year,
		Month:       entry.Month,
		MonthKey:    entry.MonthRef().Key(),
		Amount:      entry.Amount,
		Currency:    entry.Currency.String(),
		Note:        entry.Note,
		IsScheduled: s.isScheduled(entry.MonthRef()),
	}
}

func (s *service) mapBonusResponse(entry BonusEntry) EntryResponse {
	return EntryResponse{
		ID:          entry.ID.String(),
		UserID:      entry.UserID.String(),
		Year:        entry.Year,
		Month:       entry.Month,
		MonthKey:    entry.MonthRef().Key(),
		Amount:      entry.Amount,
		Currency:    entry.Currency.String(),
		Note:        entry.Note,
		IsScheduled: s.isScheduled(entry.MonthRef()),
	}
}

func validateMonth(month *int) (int, error) {
	if month == nil || *month < 0 || *month > 11 {
		return 0, apperror.InvalidField("month")
	}
	return *month, nil
}

func validateEntryKey(
	userID string,
	year int,
	month *int,
	currencyRaw string,
	amount decimal.Decimal,
) (uuid.UUID, int, domain.Currency, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, 0, "", apperror.InvalidField("user_id")
	}

	m, err := validateMonth(month)
	if err != nil {
		return uuid.Nil, 0, "", err
	}

	if year < 2000 || year > 2200 {
		return uuid.Nil, 0, "", apperror.InvalidField("year")
	}

	currency := domain.Currency(currencyRaw)
	if !currency.IsValid() {
		return uuid.Nil, 0, "", apperror.InvalidField("currency")
	}

	if amount.IsNegative() {
		return uuid.Nil, 0, "", apperror.InvalidField("amount")
	}

	return userUUID, m, currency, nil
}
