package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/dukapos/dukapos-api/pkg/apperror"
	"go.uber.org/zap"
)

// SalesSummary aggregates the ledger over a time window. Money fields are
// cents internally and rendered as decimal amounts.
type SalesSummary struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	TotalRevenue float64   `json:"total_revenue"`
	TotalProfit  float64   `json:"total_profit"`
}

// AnalyticsService answers read-only aggregate queries over the ledger and
// the catalog. Summaries are cached per window; any ledger append invalidates
// the whole cache via the sale-recorded topic, which is cheap because the
// ledger only grows.
type AnalyticsService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository

	mu    sync.RWMutex
	cache map[string]*SalesSummary
}

// NewAnalyticsService creates a new analytics service and subscribes it to
// ledger append notifications on the given bus
func NewAnalyticsService(saleRepo repository.SaleRepository, productRepo repository.ProductRepository, bus EventBus.Bus) *AnalyticsService {
	s := &AnalyticsService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		cache:       make(map[string]*SalesSummary),
	}
	if bus != nil {
		if err := bus.Subscribe(TopicSaleRecorded, s.onSaleRecorded); err != nil {
			zap.L().Error("failed to subscribe to sale notifications", zap.Error(err))
		}
	}
	return s
}

func (s *AnalyticsService) onSaleRecorded(_ []entity.Sale) {
	s.mu.Lock()
	s.cache = make(map[string]*SalesSummary)
	s.mu.Unlock()
}

func windowKey(start, end time.Time) string {
	return fmt.Sprintf("%d:%d", start.UnixNano(), end.UnixNano())
}

// Summary returns total revenue and profit over [start, end)
func (s *AnalyticsService) Summary(ctx context.Context, start, end time.Time) (*SalesSummary, error) {
	if end.Before(start) {
		return nil, apperror.NewBadRequestError("End of range must not precede its start")
	}

	key := windowKey(start, end)
	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	revenue, profit, err := s.saleRepo.SumInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	summary := &SalesSummary{
		Start:        start,
		End:          end,
		TotalRevenue: float64(revenue) / 100,
		TotalProfit:  float64(profit) / 100,
	}

	s.mu.Lock()
	s.cache[key] = summary
	s.mu.Unlock()

	return summary, nil
}

// TodaySummary returns the summary for the current calendar day in loc
func (s *AnalyticsService) TodaySummary(ctx context.Context, loc *time.Location) (*SalesSummary, error) {
	if loc == nil {
		loc = time.Local
	}
	now := time.Now().In(loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	return s.Summary(ctx, start, start.AddDate(0, 0, 1))
}

// TopSellers returns the best-selling products over [start, end) by quantity,
// ties broken by product name
func (s *AnalyticsService) TopSellers(ctx context.Context, start, end time.Time, limit int) ([]repository.TopSellerResult, error) {
	if end.Before(start) {
		return nil, apperror.NewBadRequestError("End of range must not precede its start")
	}
	if limit < 1 {
		limit = 5
	}
	if limit > 50 {
		limit = 50
	}
	return s.saleRepo.TopSellers(ctx, start, end, limit)
}

// LowStock returns products at or below their low-stock threshold
func (s *AnalyticsService) LowStock(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}
