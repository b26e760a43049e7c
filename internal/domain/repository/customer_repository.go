package repository

import (
	"context"

	"github.com/fabioverbena/Event-Manager/internal/domain/entity"
	"github.com/fabioverbena/Event-Manager/pkg/pagination"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	// Deactivate soft-deletes a customer by clearing its active flag
	Deactivate(ctx context.Context, id uuid.UUID) error
	// List returns active customers ordered by name
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
	// Search matches the legal name case-insensitively, for autocomplete
	Search(ctx context.Context, term string, limit int) ([]entity.Customer, error)
	CountActive(ctx context.Context) (int64, error)
}
