package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/fabioverbena/Event-Manager/internal/domain/entity"
	domainRepo "github.com/fabioverbena/Event-Manager/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fallbackCodePrefix is used for names with fewer than three letters
const fallbackCodePrefix = "PRD"

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := r.db.WithContext(ctx).Preload("Category").Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "codice_prodotto = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Omit("Category").Save(product).Error
}

func (r *productRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ?", id).
		Update("disponibile", false).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{}).
		Scopes(FlagScope("disponibile"), SearchScope(params.Search, "nome", "codice_prodotto"))

	if params.CategoryID != nil {
		query = query.Where("categoria_id = ?", *params.CategoryID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Category").
		Order("codice_prodotto ASC").
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) Search(ctx context.Context, term string, limit int) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Scopes(FlagScope("disponibile"), SearchScope(term, "nome", "codice_prodotto")).
		Preload("Category").
		Order("codice_prodotto ASC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepository) ListByCategoryNames(ctx context.Context, names []string) ([]entity.Product, error) {
	var products []entity.Product
	if len(names) == 0 {
		return products, nil
	}
	err := r.db.WithContext(ctx).
		Joins("JOIN categorie ON categorie.id = prodotti.categoria_id").
		Where("prodotti.disponibile = ?", true).
		Where("categorie.nome IN ?", names).
		Order("prodotti.codice_prodotto ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) CountAvailable(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Product{}).
		Scopes(FlagScope("disponibile")).
		Count(&count).Error
	return count, err
}

func (r *productRepository) GenerateCode(ctx context.Context, name string) (string, error) {
	prefix := CodePrefix(name)
	var codes []string
	err := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("codice_prodotto LIKE ?", prefix+"-%").
		Pluck("codice_prodotto", &codes).Error
	if err != nil {
		return "", fmt.Errorf("generate product code: %w", err)
	}
	return NextCode(prefix, codes), nil
}

// CodePrefix is the first three letters of name uppercased, or "PRD".
func CodePrefix(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if r <= unicode.MaxASCII && unicode.IsLetter(r) {
			b.WriteRune(r)
			if b.Len() == 3 {
				return b.String()
			}
		}
	}
	return fallbackCodePrefix
}

// NextCode returns prefix-NNN with NNN one above the highest numeric suffix
// among existing. Codes with a non-numeric suffix are ignored.
func NextCode(prefix string, existing []string) string {
	highest := 0
	for _, c := range existing {
		suffix, ok := strings.CutPrefix(c, prefix+"-")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		highest = max(highest, n)
	}
	return fmt.Sprintf("%s-%03d", prefix, highest+1)
}
