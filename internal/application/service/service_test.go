package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fabioverbena/Event-Manager/internal/domain/entity"
	"github.com/fabioverbena/Event-Manager/internal/domain/enum"
	"github.com/fabioverbena/Event-Manager/internal/infrastructure/cache"
	"github.com/fabioverbena/Event-Manager/internal/infrastructure/database"
	"github.com/fabioverbena/Event-Manager/internal/infrastructure/repository"
	"github.com/fabioverbena/Event-Manager/pkg/document"
	"github.com/fabioverbena/Event-Manager/pkg/leasing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryCache is a Cache kept in a map, for asserting cache-aside behaviour
type memoryCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	deletes int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.items[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return b, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
	c.deletes++
	return nil
}

type fixture struct {
	db         *gorm.DB
	cache      *memoryCache
	customers  *CustomerService
	categories *CategoryService
	products   *ProductService
	settings   *SettingsService
	dashboard  *DashboardService
	orders     *OrderService
	documents  *DocumentService
}

var fixedNow = time.Date(2025, 4, 12, 10, 30, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.NewSQLiteDB("file::memory:", false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	categoryRepo := repository.NewCategoryRepository(db)
	require.NoError(t, database.SeedDefaultData(context.Background(), categoryRepo))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	f := &fixture{db: db, cache: newMemoryCache()}
	f.customers = NewCustomerService(customerRepo)
	f.categories = NewCategoryService(categoryRepo)
	f.products = NewProductService(productRepo, categoryRepo)
	f.settings = NewSettingsService(repository.NewSettingsRepository(db))
	f.dashboard = NewDashboardService(repository.NewAnalyticsRepository(db), f.cache, time.Minute)
	f.orders = NewOrderService(orderRepo, productRepo, customerRepo, f.settings, f.dashboard)
	f.orders.now = func() time.Time { return fixedNow }

	renderer := document.NewRenderer(document.DefaultCompany, document.WithClock(func() time.Time { return fixedNow }))
	f.documents = NewDocumentService(f.orders, orderRepo, productRepo, f.settings, renderer, leasing.NewTermsBook(nil), DocumentOptions{
		DefaultCopies: 1,
		MaxCopies:     5,
		LeasingCodes:  map[string]string{"esp-104": "leo4"},
	})
	return f
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func (f *fixture) customer(t *testing.T, name string) *entity.Customer {
	t.Helper()
	c, err := f.customers.CreateCustomer(context.Background(), &CreateCustomerInput{Name: name})
	require.NoError(t, err)
	return c
}

func (f *fixture) product(t *testing.T, category uuid.UUID, code, name, price string) *entity.Product {
	t.Helper()
	p, err := f.products.CreateProduct(context.Background(), &CreateProductInput{
		CategoryID: category,
		Code:       code,
		Name:       name,
		ListPrice:  dec(price),
		Unit:       enum.UnitPezzo,
	})
	require.NoError(t, err)
	return p
}

func line(p *entity.Product, qty string) OrderLineInput {
	return OrderLineInput{ProductID: p.ID, Quantity: dec(qty)}
}
