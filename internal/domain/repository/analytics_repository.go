package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// OrderTotals aggregates the orders that are not cancelled
type OrderTotals struct {
	Count   int64
	Revenue decimal.Decimal
}

// AnalyticsRepository provides the dashboard aggregates
type AnalyticsRepository interface {
	ActiveCustomers(ctx context.Context) (int64, error)
	AvailableProducts(ctx context.Context) (int64, error)
	OrderTotals(ctx context.Context) (OrderTotals, error)
}
