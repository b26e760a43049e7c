package repository

import (
	"context"

	"github.com/fabioverbena/Event-Manager/internal/domain/entity"
	"github.com/fabioverbena/Event-Manager/pkg/pagination"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID returns the product with its category preloaded
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products with categories in a single query
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// Deactivate soft-deletes a product by clearing its availability flag
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	// Search matches name or code case-insensitively among available products
	Search(ctx context.Context, term string, limit int) ([]entity.Product, error)
	// ListByCategoryNames returns available products whose category has one
	// of the given names, ordered by code
	ListByCategoryNames(ctx context.Context, names []string) ([]entity.Product, error)
	CountAvailable(ctx context.Context) (int64, error)
	// GenerateCode returns the next free code for a product name, e.g. "ESP-004"
	GenerateCode(ctx context.Context, name string) (string, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CategoryID *uuid.UUID
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	// GetByName matches case-insensitively among active categories
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	// List returns active categories ordered by display order
	List(ctx context.Context) ([]entity.Category, error)
	Children(ctx context.Context, parentID uuid.UUID) ([]entity.Category, error)
	// EnsureDefaults inserts the given categories when their IDs are missing
	EnsureDefaults(ctx context.Context, categories []entity.Category) error
}
