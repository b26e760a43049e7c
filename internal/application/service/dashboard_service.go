package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fabioverbena/Event-Manager/internal/domain/repository"
	"github.com/fabioverbena/Event-Manager/internal/infrastructure/cache"
	"github.com/fabioverbena/Event-Manager/internal/infrastructure/metrics"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// dashboardStatsKey is dropped whenever orders change
const dashboardStatsKey = "dashboard:stats"

// DefaultStatsTTL is how long dashboard stats stay cached
const DefaultStatsTTL = 60 * time.Second

// DashboardService provides dashboard statistics
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	cache         cache.Cache
	ttl           time.Duration
}

// NewDashboardService creates a new dashboard service. A nil cache disables
// caching.
func NewDashboardService(analyticsRepo repository.AnalyticsRepository, c cache.Cache, ttl time.Duration) *DashboardService {
	if c == nil {
		c = cache.NewNoop()
	}
	if ttl <= 0 {
		ttl = DefaultStatsTTL
	}
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		cache:         c,
		ttl:           ttl,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	ActiveCustomers   int64           `json:"clienti_attivi"`
	AvailableProducts int64           `json:"prodotti_disponibili"`
	TotalOrders       int64           `json:"ordini_totali"`
	TotalRevenue      decimal.Decimal `json:"fatturato_totale"`
}

// GetDashboardStats returns the counters shown on the home page. Cancelled
// orders are left out of the order count and revenue.
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	if b, err := s.cache.Get(ctx, dashboardStatsKey); err == nil {
		var stats DashboardStats
		if jsonErr := json.Unmarshal(b, &stats); jsonErr == nil {
			metrics.DashboardCacheTotal.WithLabelValues("hit").Inc()
			return &stats, nil
		}
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Warn().Err(err).Msg("dashboard cache read failed")
	}
	metrics.DashboardCacheTotal.WithLabelValues("miss").Inc()

	stats := &DashboardStats{}
	var err error

	if stats.ActiveCustomers, err = s.analyticsRepo.ActiveCustomers(ctx); err != nil {
		return nil, err
	}
	if stats.AvailableProducts, err = s.analyticsRepo.AvailableProducts(ctx); err != nil {
		return nil, err
	}
	totals, err := s.analyticsRepo.OrderTotals(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalOrders = totals.Count
	stats.TotalRevenue = totals.Revenue

	// best effort
	if b, jsonErr := json.Marshal(stats); jsonErr == nil {
		if err := s.cache.Set(ctx, dashboardStatsKey, b, s.ttl); err != nil {
			log.Warn().Err(err).Msg("dashboard cache write failed")
		}
	}

	return stats, nil
}

// Invalidate drops the cached stats
func (s *DashboardService) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, dashboardStatsKey); err != nil {
		log.Warn().Err(err).Msg("dashboard cache invalidation failed")
	}
}
