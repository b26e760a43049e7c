package service

import (
	"context"
	"strings"

	"github.com/fabioverbena/Event-Manager/internal/domain/entity"
	"github.com/fabioverbena/Event-Manager/internal/domain/enum"
	"github.com/fabioverbena/Event-Manager/internal/domain/repository"
	"github.com/fabioverbena/Event-Manager/pkg/apperror"
	"github.com/google/uuid"
)

// CategoryService handles category-related operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategoryInput represents the create category input
type CreateCategoryInput struct {
	Name         string
	ParentID     *uuid.UUID
	OrderType    enum.OrderType
	DisplayOrder int
	Description  *string
}

// CreateCategory creates a new category. A child category inherits the
// order type of its parent.
func (s *CategoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldError("nome", apperror.MsgRequiredField)
	}

	existing, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Esiste già una categoria con questo nome")
	}

	category := &entity.Category{
		Name:         name,
		OrderType:    input.OrderType,
		DisplayOrder: input.DisplayOrder,
		Description:  optional(input.Description),
		Active:       true,
	}

	if input.ParentID != nil {
		parent, err := s.GetCategory(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.ParentID != nil {
			return nil, apperror.NewFieldError("parent_id", "Le categorie hanno al massimo due livelli")
		}
		category.ParentID = &parent.ID
		category.OrderType = parent.OrderType
	}

	if !category.OrderType.IsValid() {
		return nil, apperror.NewFieldError("tipo_ordine", "Tipo ordine non valido")
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Categoria")
	}
	return category, nil
}

// ListCategories lists active categories in display order
func (s *CategoryService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx)
}

// UpdateCategoryInput represents the update category input
type UpdateCategoryInput struct {
	ID           uuid.UUID
	Name         *string
	DisplayOrder *int
	Description  *string
}

// UpdateCategory updates a category. The parent and order type are fixed
// once created.
func (s *CategoryService) UpdateCategory(ctx context.Context, input *UpdateCategoryInput) (*entity.Category, error) {
	category, err := s.GetCategory(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewFieldError("nome", apperror.MsgRequiredField)
		}
		if !strings.EqualFold(name, category.Name) {
			existing, err := s.categoryRepo.GetByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != category.ID {
				return nil, apperror.NewConflictError("Esiste già una categoria con questo nome")
			}
		}
		category.Name = name
	}
	if input.DisplayOrder != nil {
		category.DisplayOrder = *input.DisplayOrder
	}
	if input.Description != nil {
		category.Description = optional(input.Description)
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory soft-deletes a category
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	return s.categoryRepo.Deactivate(ctx, id)
}
