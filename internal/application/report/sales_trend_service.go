package report

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/supermart/backend/internal/domain/sales"
)

// MaxTrendMonths caps the monthly sales window
const MaxTrendMonths = 12

// MonthlyPoint is one month's aggregated sales
type MonthlyPoint struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// SalesTrend is the monthly sales aggregation over the requested window
type SalesTrend struct {
	Months int            `json:"months"`
	Series []MonthlyPoint `json:"series"`
}

// SalesTrendService aggregates recorded orders into monthly totals
type SalesTrendService struct {
	orderRepo sales.OrderRepository
	now       func() time.Time
}

// NewSalesTrendService creates a new SalesTrendService
func NewSalesTrendService(orderRepo sales.OrderRepository) *SalesTrendService {
	return &SalesTrendService{
		orderRepo: orderRepo,
		now:       time.Now,
	}
}

// MonthlySales sums order totals per calendar month over the last N months.
// The window is clamped to MaxTrendMonths; a non-positive request also gets
// the full window. Months are bucketed by the year-month prefix of the
// stored order timestamp and the series is sorted chronologically. Months
// with no sales do not appear.
func (s *SalesTrendService) MonthlySales(ctx context.Context, months int) (*SalesTrend, error) {
	if months < 1 || months > MaxTrendMonths {
		months = MaxTrendMonths
	}

	cutoff := s.now().AddDate(0, -months, 0).Format(sales.OrderTimeLayout)
	orders, err := s.orderRepo.FindSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	for _, order := range orders {
		key := order.MonthKey()
		totals[key] = totals[key].Add(order.Total)
	}

	series := make([]MonthlyPoint, 0, len(totals))
	for month, total := range totals {
		series = append(series, MonthlyPoint{Month: month, Total: total})
	}
	// The timestamp layout sorts lexicographically in time order
	sort.Slice(series, func(i, j int) bool {
		return series[i].Month < series[j].Month
	})

	return &SalesTrend{Months: months, Series: series}, nil
}
