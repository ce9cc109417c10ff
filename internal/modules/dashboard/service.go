package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nihar360/admin/internal/shared/money"
)

type StatsRepository interface {
	RevenueCentsSince(ctx context.Context, since time.Time) (int64, error)
	CountOrdersSince(ctx context.Context, since time.Time) (int64, error)
	CountAllOrders(ctx context.Context) (int64, error)
}

type CustomerCounter interface {
	CountCustomers(ctx context.Context) (int64, error)
}

type Service struct {
	repo      StatsRepository
	customers CustomerCounter
	log       *slog.Logger
	now       func() time.Time
}

func NewService(repo StatsRepository, customers CustomerCounter, log *slog.Logger) *Service {
	return &Service{repo: repo, customers: customers, log: log, now: time.Now}
}

// Snapshot is computed per request and not persisted.
type Snapshot struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalOrders       int64           `json:"totalOrders"`
	TotalCustomers    int64           `json:"totalCustomers"`
	AllTimeOrders     int64           `json:"allTimeOrders"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	RevenueChange     float64         `json:"revenueChange"`
	OrdersChange      float64         `json:"ordersChange"`
	CustomersChange   float64         `json:"customersChange"`
}

type SalesPoint struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int64           `json:"orders"`
}

// Stats compares the current calendar month (from its first instant to
// now) with the equivalent span one month earlier.
func (s *Service) Stats(ctx context.Context) (Snapshot, error) {
	now := s.now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfLastMonth := startOfMonth.AddDate(0, -1, 0)

	revenueCents, err := s.repo.RevenueCentsSince(ctx, startOfMonth)
	if err != nil {
		return Snapshot{}, err
	}
	orders, err := s.repo.CountOrdersSince(ctx, startOfMonth)
	if err != nil {
		return Snapshot{}, err
	}
	customerCount, err := s.customers.CountCustomers(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	allOrders, err := s.repo.CountAllOrders(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	// Previous period: the equivalent span one month earlier, from the
	// start of last month to the same relative offset into it. The
	// since-queries are inclusive lower bounds, so the span is the
	// difference between its two cumulative boundaries.
	prevCutoff := now.AddDate(0, -1, 0)
	lastRevenueCents, err := s.repo.RevenueCentsSince(ctx, startOfLastMonth)
	if err != nil {
		return Snapshot{}, err
	}
	lastOrders, err := s.repo.CountOrdersSince(ctx, startOfLastMonth)
	if err != nil {
		return Snapshot{}, err
	}
	revenueSinceCutoff, err := s.repo.RevenueCentsSince(ctx, prevCutoff)
	if err != nil {
		return Snapshot{}, err
	}
	ordersSinceCutoff, err := s.repo.CountOrdersSince(ctx, prevCutoff)
	if err != nil {
		return Snapshot{}, err
	}
	lastRevenueCents -= revenueSinceCutoff
	lastOrders -= ordersSinceCutoff

	revenue := money.FromCents(revenueCents)

	avg := decimal.Zero
	if orders > 0 {
		avg = revenue.DivRound(decimal.NewFromInt(orders), 2)
	}

	return Snapshot{
		TotalRevenue:      revenue,
		TotalOrders:       orders,
		TotalCustomers:    customerCount,
		AllTimeOrders:     allOrders,
		AverageOrderValue: avg,
		RevenueChange:     percentChange(money.FromCents(lastRevenueCents), revenue),
		OrdersChange:      percentChange(decimal.NewFromInt(lastOrders), decimal.NewFromInt(orders)),
		// No historical customer-count baseline is tracked; reported as
		// zero rather than silently derived from something else.
		CustomersChange: 0.0,
	}, nil
}

// SalesSeries returns one point per calendar day, oldest first, covering
// the windowDays days ending today. Each day's value is the difference
// between the cumulative-since-that-day and cumulative-since-the-next-day
// aggregates, which yields a plain daily series. A failed lookup degrades
// that day to zero and never aborts the series.
func (s *Service) SalesSeries(ctx context.Context, windowDays int) ([]SalesPoint, error) {
	if windowDays < 1 {
		windowDays = 1
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	points := make([]SalesPoint, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		next := day.AddDate(0, 0, 1)

		point := SalesPoint{Date: day.Format("2006-01-02"), Revenue: decimal.Zero}

		revSince, err := s.repo.RevenueCentsSince(ctx, day)
		if err != nil {
			s.log.WarnContext(ctx, "sales series day degraded to zero",
				slog.String("date", point.Date), slog.Any("err", err))
			points = append(points, point)
			continue
		}
		revSinceNext, err := s.repo.RevenueCentsSince(ctx, next)
		if err != nil {
			s.log.WarnContext(ctx, "sales series day degraded to zero",
				slog.String("date", point.Date), slog.Any("err", err))
			points = append(points, point)
			continue
		}
		ordersSince, err := s.repo.CountOrdersSince(ctx, day)
		if err != nil {
			s.log.WarnContext(ctx, "sales series day degraded to zero",
				slog.String("date", point.Date), slog.Any("err", err))
			points = append(points, point)
			continue
		}
		ordersSinceNext, err := s.repo.CountOrdersSince(ctx, next)
		if err != nil {
			s.log.WarnContext(ctx, "sales series day degraded to zero",
				slog.String("date", point.Date), slog.Any("err", err))
			points = append(points, point)
			continue
		}

		point.Revenue = money.FromCents(revSince - revSinceNext)
		point.Orders = ordersSince - ordersSinceNext
		points = append(points, point)
	}

	return points, nil
}

// percentChange follows the source semantics: a zero baseline reports
// 100% when the new value is positive and 0% otherwise; the quotient is
// rounded to four places before scaling to a percentage.
func percentChange(old, new decimal.Decimal) float64 {
	if old.IsZero() {
		if new.GreaterThan(decimal.Zero) {
			return 100.0
		}
		return 0.0
	}
	f, _ := new.Sub(old).
		DivRound(old, 4).
		Mul(decimal.NewFromInt(100)).
		Float64()
	return f
}
