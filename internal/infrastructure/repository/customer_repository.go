package repository

import (
	"context"
	"errors"

	"github.com/fabioverbena/Event-Manager/internal/domain/entity"
	domainRepo "github.com/fabioverbena/Event-Manager/internal/domain/repository"
	"github.com/fabioverbena/Event-Manager/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Customer{}).
		Where("id = ?", id).
		Update("attivo", false).Error
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Customer{}).
		Scopes(FlagScope("attivo"), SearchScope(search, "ragione_sociale", "nome_referente", "citta", "email"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("ragione_sociale ASC").
		Find(&customers).Error

	return customers, total, err
}

func (r *customerRepository) Search(ctx context.Context, term string, limit int) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := r.db.WithContext(ctx).
		Scopes(FlagScope("attivo"), SearchScope(term, "ragione_sociale")).
		Order("ragione_sociale ASC").
		Limit(limit).
		Find(&customers).Error
	return customers, err
}

func (r *customerRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Customer{}).
		Scopes(FlagScope("attivo")).
		Count(&count).Error
	return count, err
}
