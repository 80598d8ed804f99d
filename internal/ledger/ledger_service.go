package ledger

import (
	"context"
	"sort"
	"sync"

	"rahalatek/internal/domain"
	"rahalatek/internal/payment"
	"rahalatek/internal/shared/apperror"
	"rahalatek/internal/shared/contextutil"
	"rahalatek/internal/voucher"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultFanOutLimit = 8

type Service interface {
	SupplierLedger(ctx context.Context, req SupplierLedgerRequest) (SupplierLedgerResponse, error)
	ClientRevenue(ctx context.Context, req ClientRevenueRequest) (ClientRevenueResponse, error)
}

type service struct {
	vouchers    voucher.Repository
	payments    payment.Repository
	fanOutLimit int
}

func NewService(vouchers voucher.Repository, payments payment.Repository) Service {
	return &service{
		vouchers:    vouchers,
		payments:    payments,
		fanOutLimit: defaultFanOutLimit,
	}
}

func (s *service) SupplierLedger(ctx context.Context, req SupplierLedgerRequest) (SupplierLedgerResponse, error) {
	currency, err := validateReportFilters(req.Currency, req.Month)
	if err != nil {
		return SupplierLedgerResponse{}, err
	}

	snapshot, err := s.vouchers.List(ctx, voucher.ListFilter{Currency: req.Currency})
	if err != nil {
		return SupplierLedgerResponse{}, err
	}

	rows := AggregateSupplierLedger(snapshot, currency)
	rows = FilterRows(rows, RowFilter{Year: req.Year, Month: req.Month, Query: req.Query})

	offices := make([]string, 0, len(rows))
	seen := make(map[string]struct{})
	for _, row := range rows {
		if _, ok := seen[row.OfficeName]; !ok {
			seen[row.OfficeName] = struct{}{}
			offices = append(offices, row.OfficeName)
		}
	}

	histories, failed := s.fetchPaymentHistories(ctx, offices)

	totals := SupplierTotals{}
	for i := range rows {
		row := &rows[i]
		row.Remaining = Remaining(row.Total, histories[row.OfficeName], payment.DirectionOutgoing, nil)

		totals.Hotels = totals.Hotels.Add(row.Hotels)
		totals.Transfers = totals.Transfers.Add(row.Transfers)
		totals.Trips = totals.Trips.Add(row.Trips)
		totals.Flights = totals.Flights.Add(row.Flights)
		totals.Total = totals.Total.Add(row.Total)
		totals.Remaining = totals.Remaining.Add(row.Remaining)
		totals.VoucherCount += row.VoucherCount
	}

	return SupplierLedgerResponse{
		Currency:      currency.String(),
		Rows:          rows,
		Totals:        totals,
		FailedSources: failed,
	}, nil
}

func (s *service) ClientRevenue(ctx context.Context, req ClientRevenueRequest) (ClientRevenueResponse, error) {
	currency, err := validateReportFilters(req.Currency, req.Month)
	if err != nil {
		return ClientRevenueResponse{}, err
	}
	switch req.ClientType {
	case ClientTypeAny, ClientTypeOffice, ClientTypeDirect:
	default:
		return ClientRevenueResponse{}, apperror.InvalidField("client_type")
	}

	snapshot, err := s.vouchers.List(ctx, voucher.ListFilter{Currency: req.Currency})
	if err != nil {
		return ClientRevenueResponse{}, err
	}

	rows := AggregateClientRevenue(snapshot, currency)
	rows = FilterClientRows(rows, ClientRowFilter{
		Year:       req.Year,
		Month:      req.Month,
		Query:      req.Query,
		ClientType: req.ClientType,
	})

	clients := make([]string, 0, len(rows))
	seen := make(map[string]struct{})
	for _, row := range rows {
		if _, ok := seen[row.ClientKey]; !ok {
			seen[row.ClientKey] = struct{}{}
			clients = append(clients, row.ClientKey)
		}
	}

	histories, failed := s.fetchPaymentHistories(ctx, clients)

	totals := ClientTotals{}
	for i := range rows {
		row := &rows[i]
		row.Remaining = Remaining(row.TotalAmount, histories[row.ClientKey], payment.DirectionIncoming, row.VoucherIDs())

		totals.TotalAmount = totals.TotalAmount.Add(row.TotalAmount)
		totals.Remaining = totals.Remaining.Add(row.Remaining)
		totals.VoucherCount += row.VoucherCount
	}

	return ClientRevenueResponse{
		Currency:      currency.String(),
		Rows:          rows,
		Totals:        totals,
		FailedSources: failed,
	}, nil
}

// fetchPaymentHistories retrieves payment events for every counterparty
// concurrently. A failed leaf degrades to an empty history and lands in the
// failed list; it never aborts the batch.
func (s *service) fetchPaymentHistories(ctx context.Context, keys []string) (map[string][]payment.Event, []string) {
	histories := make(map[string][]payment.Event, len(keys))
	var failed []string
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanOutLimit)

	for _, key := range keys {
		key := key
		g.Go(func() error {
			events, err := s.payments.ListByCounterparty(gctx, key)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				contextutil.GetLogger(ctx, zap.L()).Warn("payment history unavailable",
					zap.String("counterparty", key),
					zap.Error(err),
				)
				failed = append(failed, key)
				return nil
			}
			histories[key] = events
			return nil
		})
	}

	// Leaf errors are swallowed above, so Wait only reflects ctx cancellation.
	_ = g.Wait()

	sort.Strings(failed)
	return histories, failed
}

func validateReportFilters(currencyRaw string, month *int) (domain.Currency, error) {
	currency := domain.Currency(currencyRaw)
	if !currency.IsValid() {
		return "", apperror.InvalidField("currency")
	}
	if month != nil && (*month < 0 || *month > 11) {
		return "", apperror.InvalidField("month")
	}
	return currency, nil
}
