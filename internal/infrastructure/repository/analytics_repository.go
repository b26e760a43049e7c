package repository

import (
	"context"

	"github.com/fabioverbena/Event-Manager/internal/domain/entity"
	"github.com/fabioverbena/Event-Manager/internal/domain/enum"
	domainRepo "github.com/fabioverbena/Event-Manager/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) ActiveCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Customer{}).
		Scopes(FlagScope("attivo")).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) AvailableProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Product{}).
		Scopes(FlagScope("disponibile")).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) OrderTotals(ctx context.Context) (domainRepo.OrderTotals, error) {
	var row struct {
		Count   int64
		Revenue decimal.NullDecimal
	}
	err := r.db.WithContext(ctx).Model(&entity.Order{}).
		Select("COUNT(*) AS count, SUM(totale) AS revenue").
		Where("stato <> ?", enum.OrderStatusAnnullato).
		Scan(&row).Error
	if err != nil {
		return domainRepo.OrderTotals{}, err
	}
	return domainRepo.OrderTotals{Count: row.Count, Revenue: row.Revenue.Decimal}, nil
}
