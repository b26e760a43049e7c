package repository

import (
	"context"
	"time"

	"github.com/fabioverbena/Event-Manager/internal/domain/entity"
	"github.com/fabioverbena/Event-Manager/internal/domain/enum"
	"github.com/fabioverbena/Event-Manager/pkg/pagination"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// SaveWithLines writes the order header and replaces its lines in one
	// transaction. A new order gets the next order number.
	SaveWithLines(ctx context.Context, order *entity.Order, lines []entity.OrderLine) error
	// GetByID returns the order with customer, lines, products and categories
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
	// Delete removes the lines and then the order in one transaction
	Delete(ctx context.Context, id uuid.UUID) error
	// Events returns the distinct non-empty event names, newest first
	Events(ctx context.Context) ([]string, error)
}

// OrderFilterParams contains filtering parameters for order queries.
// A nil Pagination returns every matching order.
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.OrderStatus
	Event      string
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
