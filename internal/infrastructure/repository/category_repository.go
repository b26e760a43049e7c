package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/fabioverbena/Event-Manager/internal/domain/entity"
	domainRepo "github.com/fabioverbena/Event-Manager/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) domainRepo.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).
		Scopes(FlagScope("attivo")).
		Where("LOWER(nome) = ?", strings.ToLower(strings.TrimSpace(name))).
		Order("ordine_visualizzazione ASC").
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Omit("Parent", "Children").Save(category).Error
}

func (r *categoryRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Category{}).
		Where("id = ?", id).
		Update("attivo", false).Error
}

func (r *categoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.WithContext(ctx).
		Scopes(FlagScope("attivo")).
		Order("ordine_visualizzazione ASC, nome ASC").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) Children(ctx context.Context, parentID uuid.UUID) ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.WithContext(ctx).
		Scopes(FlagScope("attivo")).
		Where("parent_id = ?", parentID).
		Order("ordine_visualizzazione ASC").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) EnsureDefaults(ctx context.Context, categories []entity.Category) error {
	if len(categories) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Omit("Parent", "Children").
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&categories).Error
}
