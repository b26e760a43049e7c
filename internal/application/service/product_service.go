package service

import (
	"context"
	"io"
	"strings"

	"github.com/fabioverbena/Event-Manager/internal/domain/entity"
	"github.com/fabioverbena/Event-Manager/internal/domain/enum"
	"github.com/fabioverbena/Event-Manager/internal/domain/repository"
	"github.com/fabioverbena/Event-Manager/internal/infrastructure/metrics"
	"github.com/fabioverbena/Event-Manager/pkg/apperror"
	"github.com/fabioverbena/Event-Manager/pkg/csvimport"
	"github.com/fabioverbena/Event-Manager/pkg/format"
	"github.com/fabioverbena/Event-Manager/pkg/pagination"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const productSearchLimit = 20

func validUnit(s string) bool {
	return enum.Unit(strings.ToLower(s)).IsValid()
}

// ProductImportColumns is the CSV layout accepted by ImportProducts.
// categoria holds a category name, matched case-insensitively.
var ProductImportColumns = []csvimport.Column{
	{Key: "codice_prodotto", Label: "Codice Prodotto"},
	{Key: "nome", Label: "Nome", Required: true},
	{Key: "categoria", Label: "Categoria", Required: true},
	{Key: "descrizione", Label: "Descrizione"},
	{Key: "prezzo_listino", Label: "Prezzo Listino", Required: true, Validate: format.ValidDecimal},
	{Key: "unita_misura", Label: "Unità di Misura", Validate: validUnit},
}

var productTemplateExample = []string{
	"", "Leonardo IV", "Diretti", "Espositore refrigerato 4 ripiani", "2.450,00", "pz",
}

// ProductService handles product-related operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateProductInput represents the create product input. A blank Code is
// generated from the name.
type CreateProductInput struct {
	CategoryID  uuid.UUID
	Code        string
	Name        string
	Description *string
	ListPrice   decimal.Decimal
	Unit        enum.Unit
	Notes       *string
	ImageURL    *string
	Imported    bool
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{
		CategoryID:  input.CategoryID,
		Code:        strings.ToUpper(strings.TrimSpace(input.Code)),
		Name:        strings.TrimSpace(input.Name),
		Description: optional(input.Description),
		ListPrice:   input.ListPrice,
		Unit:        input.Unit,
		Available:   true,
		Notes:       optional(input.Notes),
		ImageURL:    optional(input.ImageURL),
		Imported:    input.Imported,
	}
	if product.Unit == "" {
		product.Unit = enum.UnitPezzo
	}

	if err := validateProduct(product); err != nil {
		return nil, err
	}

	category, err := s.activeCategory(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}

	if product.Code == "" {
		code, err := s.productRepo.GenerateCode(ctx, product.Name)
		if err != nil {
			return nil, err
		}
		product.Code = code
	} else if err := s.ensureCodeFree(ctx, product.Code, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	product.Category = category
	return product, nil
}

// GetProduct retrieves a product by ID with its category
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Prodotto")
	}
	return product, nil
}

// ListProducts lists available products ordered by code
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	params.Search = strings.TrimSpace(params.Search)

	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// SearchProducts backs the product picker of the order form
func (s *ProductService) SearchProducts(ctx context.Context, term string) ([]entity.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []entity.Product{}, nil
	}
	return s.productRepo.Search(ctx, term, productSearchLimit)
}

// GenerateCode suggests the next free code for a product name
func (s *ProductService) GenerateCode(ctx context.Context, name string) (string, error) {
	return s.productRepo.GenerateCode(ctx, strings.TrimSpace(name))
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ID          uuid.UUID
	CategoryID  *uuid.UUID
	Code        *string
	Name        *string
	Description *string
	ListPrice   *decimal.Decimal
	Unit        *enum.Unit
	Available   *bool
	Notes       *string
	ImageURL    *string
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil && *input.CategoryID != product.CategoryID {
		category, err := s.activeCategory(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		product.CategoryID = category.ID
		product.Category = category
	}
	if input.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*input.Code))
		if code == "" {
			return nil, apperror.NewFieldError("codice_prodotto", apperror.MsgRequiredField)
		}
		if code != product.Code {
			if err := s.ensureCodeFree(ctx, code, product.ID); err != nil {
				return nil, err
			}
			product.Code = code
		}
	}
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = optional(input.Description)
	}
	if input.ListPrice != nil {
		product.ListPrice = *input.ListPrice
	}
	if input.Unit != nil {
		product.Unit = *input.Unit
	}
	if input.Available != nil {
		product.Available = *input.Available
	}
	if input.Notes != nil {
		product.Notes = optional(input.Notes)
	}
	if input.ImageURL != nil {
		product.ImageURL = optional(input.ImageURL)
	}

	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct marks a product unavailable. Existing order lines keep it.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Deactivate(ctx, id)
}

// ImportProducts creates one product per valid CSV row
func (s *ProductService) ImportProducts(ctx context.Context, r io.Reader) (*ImportResult, error) {
	parsed, err := csvimport.Parse(r, ProductImportColumns)
	if err != nil {
		return nil, parseError(err)
	}

	errs := append([]string{}, parsed.Errors...)
	categories := make(map[string]*entity.Category)
	imported := 0

	for _, row := range parsed.Rows {
		name := row.Get("categoria")
		key := strings.ToLower(name)
		category, seen := categories[key]
		if !seen {
			category, err = s.categoryRepo.GetByName(ctx, name)
			if err != nil {
				return nil, err
			}
			categories[key] = category
		}
		if category == nil {
			errs = append(errs, rowError(row.Line, apperror.NewFieldError("categoria", `categoria "`+name+`" non trovata`)))
			continue
		}

		// validated by the column rule
		price, _ := format.ParseDecimal(row.Get("prezzo_listino"))
		_, err := s.CreateProduct(ctx, &CreateProductInput{
			CategoryID:  category.ID,
			Code:        row.Get("codice_prodotto"),
			Name:        row.Get("nome"),
			Description: optionalValue(row.Get("descrizione")),
			ListPrice:   price,
			Unit:        enum.Unit(strings.ToLower(row.Get("unita_misura"))),
			Imported:    true,
		})
		if err != nil {
			errs = append(errs, rowError(row.Line, err))
			continue
		}
		imported++
	}

	metrics.CSVRowsImportedTotal.WithLabelValues("prodotti", "imported").Add(float64(imported))
	metrics.CSVRowsImportedTotal.WithLabelValues("prodotti", "rejected").Add(float64(len(errs)))
	log.Info().Int("imported", imported).Int("rejected", len(errs)).Msg("product import completed")

	return newImportResult(imported, errs, ProductImportColumns), nil
}

func (s *ProductService) activeCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil || !category.Active {
		return nil, apperror.NewNotFoundError("Categoria")
	}
	return category, nil
}

func (s *ProductService) ensureCodeFree(ctx context.Context, code string, self uuid.UUID) error {
	existing, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return apperror.NewConflictError("Codice prodotto già esistente: " + code)
	}
	return nil
}

func validateProduct(p *entity.Product) error {
	var fieldErrors []apperror.FieldError
	if p.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "nome", Message: apperror.MsgRequiredField})
	}
	if p.CategoryID == uuid.Nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "categoria_id", Message: apperror.MsgRequiredField})
	}
	if p.ListPrice.LessThan(entity.Limits.MinPrice) || p.ListPrice.GreaterThan(entity.Limits.MaxPrice) {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "prezzo_listino",
			Message: "Il prezzo deve essere compreso tra " + format.Money(entity.Limits.MinPrice) + " e " + format.Money(entity.Limits.MaxPrice),
		})
	}
	if !p.Unit.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "unita_misura", Message: "Unità di misura non valida"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
