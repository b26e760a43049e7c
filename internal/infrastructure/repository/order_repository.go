package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fabioverbena/Event-Manager/internal/domain/entity"
	"github.com/fabioverbena/Event-Manager/internal/domain/enum"
	domainRepo "github.com/fabioverbena/Event-Manager/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// orderNumberLock serialises order number allocation on postgres
const orderNumberLock = 7301

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) SaveWithLines(ctx context.Context, order *entity.Order, lines []entity.OrderLine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if order.ID == uuid.Nil {
			number, err := nextOrderNumber(tx)
			if err != nil {
				return err
			}
			order.Number = number
			if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
				return fmt.Errorf("insert order: %w", err)
			}
		} else {
			if err := tx.Omit(clause.Associations).Save(order).Error; err != nil {
				return fmt.Errorf("update order: %w", err)
			}
			if err := tx.Where("ordine_id = ?", order.ID).Delete(&entity.OrderLine{}).Error; err != nil {
				return fmt.Errorf("delete order lines: %w", err)
			}
		}

		for i := range lines {
			lines[i].ID = uuid.Nil
			lines[i].OrderID = order.ID
		}
		if len(lines) > 0 {
			if err := tx.Omit(clause.Associations).Create(&lines).Error; err != nil {
				return fmt.Errorf("insert order lines: %w", err)
			}
		}
		order.Lines = lines
		return nil
	})
}

func nextOrderNumber(tx *gorm.DB) (int, error) {
	if tx.Dialector.Name() == "postgres" {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", orderNumberLock).Error; err != nil {
			return 0, fmt.Errorf("lock order numbers: %w", err)
		}
	}
	var highest int
	err := tx.Model(&entity.Order{}).
		Select("COALESCE(MAX(numero_ordine), 0)").
		Scan(&highest).Error
	if err != nil {
		return 0, fmt.Errorf("allocate order number: %w", err)
	}
	return highest + 1, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordine_riga ASC")
		}).
		Preload("Lines.Product.Category").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{})

	if params.Search != "" {
		customers := r.db.WithContext(ctx).Model(&entity.Customer{}).
			Select("id").
			Scopes(SearchScope(params.Search, "ragione_sociale"))
		query = query.Where("cliente_id IN (?)", customers)
	}

	if params.Status != nil {
		query = query.Where("stato = ?", *params.Status)
	}

	if params.Event != "" {
		query = query.Where("nome_evento = ?", params.Event)
	}

	if params.CustomerID != nil {
		query = query.Where("cliente_id = ?", *params.CustomerID)
	}

	if params.StartDate != nil {
		query = query.Where("data_ordine >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("data_ordine <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination != nil {
		params.Pagination.Validate()
		query = query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage)
	}

	err := query.
		Preload("Customer").
		Order("data_ordine DESC, numero_ordine DESC").
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", id).
		Update("stato", status).Error
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ordine_id = ?", id).Delete(&entity.OrderLine{}).Error; err != nil {
			return fmt.Errorf("delete order lines: %w", err)
		}
		return tx.Delete(&entity.Order{}, "id = ?", id).Error
	})
}

func (r *orderRepository) Events(ctx context.Context) ([]string, error) {
	var events []string
	err := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("nome_evento <> ?", "").
		Group("nome_evento").
		Order("MAX(data_ordine) DESC").
		Pluck("nome_evento", &events).Error
	return events, err
}
