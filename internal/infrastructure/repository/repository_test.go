package repository

import (
	"context"
	"testing"
	"time"

	"github.com/fabioverbena/Event-Manager/internal/domain/entity"
	"github.com/fabioverbena/Event-Manager/internal/domain/enum"
	domainRepo "github.com/fabioverbena/Event-Manager/internal/domain/repository"
	"github.com/fabioverbena/Event-Manager/internal/infrastructure/database"
	"github.com/fabioverbena/Event-Manager/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteDB("file::memory:", false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedDefaultData(context.Background(), NewCategoryRepository(db)))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func createCustomer(t *testing.T, repo domainRepo.CustomerRepository, name string) *entity.Customer {
	t.Helper()
	c := &entity.Customer{Name: name, Active: true}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func createProduct(t *testing.T, repo domainRepo.ProductRepository, code, name, price string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		CategoryID: entity.CategoryGemme,
		Code:       code,
		Name:       name,
		ListPrice:  dec(price),
		Unit:       enum.UnitPezzo,
		Available:  true,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestCodePrefix(t *testing.T) {
	cases := map[string]string{
		"Leonardo IV":   "LEO",
		"gemme blu":     "GEM",
		"3D kit":        "DKI",
		"Ø":             "PRD",
		"ab":            "PRD",
		"Città Fiorita": "CIT",
	}
	for name, want := range cases {
		assert.Equal(t, want, CodePrefix(name), name)
	}
}

func TestNextCode(t *testing.T) {
	assert.Equal(t, "LEO-001", NextCode("LEO", nil))
	assert.Equal(t, "LEO-013", NextCode("LEO", []string{"LEO-002", "LEO-012", "LEO-X", "LEON-099"}))
	assert.Equal(t, "GEM-1000", NextCode("GEM", []string{"GEM-999"}))
}

func TestProductRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	createProduct(t, repo, "GEM-001", "Gemme Blu", "12.50")
	createProduct(t, repo, "GEM-004", "Gemme Rosse", "13")
	off := createProduct(t, repo, "GEM-002", "Gemme Verdi", "11")
	require.NoError(t, repo.Deactivate(ctx, off.ID))

	code, err := repo.GenerateCode(ctx, "Gemme gialle")
	require.NoError(t, err)
	assert.Equal(t, "GEM-005", code)

	found, err := repo.Search(ctx, "gemme", 10)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "GEM-001", found[0].Code)
	require.NotNil(t, found[0].Category)
	assert.Equal(t, "Gemme", found[0].Category.Name)

	list, total, err := repo.List(ctx, &domainRepo.ProductFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 1},
		CategoryID: &entity.CategoryGemme,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, list, 1)

	byCategory, err := repo.ListByCategoryNames(ctx, enum.FormTypeGemme.CategoryNames())
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	count, err := repo.CountAvailable(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	missing, err := repo.GetByCode(ctx, "NOPE-001")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCustomerRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	createCustomer(t, repo, "Zeta Fiori")
	createCustomer(t, repo, "alfa garden")
	gone := createCustomer(t, repo, "Beta Vivai")
	require.NoError(t, repo.Deactivate(ctx, gone.ID))

	list, total, err := repo.List(ctx, pagination.DefaultPagination(), "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, list, 2)

	found, err := repo.Search(ctx, "FIORI", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Zeta Fiori", found[0].Name)

	count, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	still, err := repo.GetByID(ctx, gone.ID)
	require.NoError(t, err)
	require.NotNil(t, still)
	assert.False(t, still.Active)
}

func newOrder(customer *entity.Customer, event string, day time.Time) *entity.Order {
	return &entity.Order{
		CustomerID: customer.ID,
		EventName:  event,
		OrderDate:  day,
		Status:     enum.OrderStatusBozza,
		Subtotal:   dec("100"),
		Total:      dec("100"),
	}
}

func TestOrderRepositorySaveWithLines(t *testing.T) {
	db := newTestDB(t)
	customers := NewCustomerRepository(db)
	products := NewProductRepository(db)
	orders := NewOrderRepository(db)
	ctx := context.Background()

	customer := createCustomer(t, customers, "Fiori Rossi")
	p1 := createProduct(t, products, "GEM-001", "Gemme Blu", "10")
	p2 := createProduct(t, products, "GEM-002", "Gemme Rosse", "20")
	day := time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC)

	first := newOrder(customer, "Myplant 2025", day)
	require.NoError(t, orders.SaveWithLines(ctx, first, []entity.OrderLine{
		{ProductID: p1.ID, Quantity: dec("2"), UnitPrice: dec("10"), Subtotal: dec("20"), Position: 0},
		{ProductID: p2.ID, Quantity: dec("4"), UnitPrice: dec("20"), Subtotal: dec("80"), Position: 1},
	}))
	assert.Equal(t, 1, first.Number)

	second := newOrder(customer, "Flormart 2025", day.AddDate(0, 0, 1))
	require.NoError(t, orders.SaveWithLines(ctx, second, []entity.OrderLine{
		{ProductID: p1.ID, Quantity: dec("1"), UnitPrice: dec("10"), Subtotal: dec("10")},
	}))
	assert.Equal(t, 2, second.Number)

	got, err := orders.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Customer)
	assert.Equal(t, "Fiori Rossi", got.Customer.Name)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, "GEM-001", got.Lines[0].Product.Code)
	assert.Equal(t, "Gemme", got.Lines[1].Product.Category.Name)

	// updating replaces every line and keeps the number
	got.Customer, got.Lines = nil, nil
	require.NoError(t, orders.SaveWithLines(ctx, got, []entity.OrderLine{
		{ProductID: p2.ID, Quantity: dec("1"), UnitPrice: dec("20"), Subtotal: dec("20")},
	}))
	reloaded, err := orders.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Number)
	require.Len(t, reloaded.Lines, 1)
	assert.Equal(t, p2.ID, reloaded.Lines[0].ProductID)

	var lineCount int64
	require.NoError(t, db.Model(&entity.OrderLine{}).Count(&lineCount).Error)
	assert.EqualValues(t, 2, lineCount)

	events, err := orders.Events(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Flormart 2025", "Myplant 2025"}, events)

	require.NoError(t, orders.Delete(ctx, second.ID))
	gone, err := orders.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	require.NoError(t, db.Model(&entity.OrderLine{}).Count(&lineCount).Error)
	assert.EqualValues(t, 1, lineCount)
}

func TestOrderRepositoryListAndTotals(t *testing.T) {
	db := newTestDB(t)
	customers := NewCustomerRepository(db)
	products := NewProductRepository(db)
	orders := NewOrderRepository(db)
	analytics := NewAnalyticsRepository(db)
	ctx := context.Background()

	rossi := createCustomer(t, customers, "Fiori Rossi")
	verdi := createCustomer(t, customers, "Vivai Verdi")
	p := createProduct(t, products, "GEM-001", "Gemme Blu", "10")
	day := time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC)
	line := func() []entity.OrderLine {
		return []entity.OrderLine{{ProductID: p.ID, Quantity: dec("1"), UnitPrice: dec("100"), Subtotal: dec("100")}}
	}

	a := newOrder(rossi, "Myplant 2025", day)
	require.NoError(t, orders.SaveWithLines(ctx, a, line()))
	b := newOrder(verdi, "Myplant 2025", day.AddDate(0, 0, 2))
	require.NoError(t, orders.SaveWithLines(ctx, b, line()))
	c := newOrder(verdi, "Flormart 2025", day.AddDate(0, 1, 0))
	require.NoError(t, orders.SaveWithLines(ctx, c, line()))
	require.NoError(t, orders.UpdateStatus(ctx, c.ID, enum.OrderStatusAnnullato))

	all, total, err := orders.List(ctx, &domainRepo.OrderFilterParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, []int{3, 2, 1}, []int{all[0].Number, all[1].Number, all[2].Number})
	assert.NotNil(t, all[0].Customer)

	bySearch, _, err := orders.List(ctx, &domainRepo.OrderFilterParams{Search: "verdi"})
	require.NoError(t, err)
	assert.Len(t, bySearch, 2)

	cancelled := enum.OrderStatusAnnullato
	byStatus, _, err := orders.List(ctx, &domainRepo.OrderFilterParams{Status: &cancelled})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, c.ID, byStatus[0].ID)

	from, to := day, day.AddDate(0, 0, 2)
	byDate, _, err := orders.List(ctx, &domainRepo.OrderFilterParams{
		Event:      "Myplant 2025",
		CustomerID: &verdi.ID,
		StartDate:  &from,
		EndDate:    &to,
	})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, b.ID, byDate[0].ID)

	paged, total, err := orders.List(ctx, &domainRepo.OrderFilterParams{
		Pagination: &pagination.PaginationParams{Page: 2, PerPage: 2},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, paged, 1)

	totals, err := analytics.OrderTotals(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, totals.Count)
	assert.True(t, totals.Revenue.Equal(dec("200")), totals.Revenue.String())

	active, err := analytics.ActiveCustomers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, active)
}

func TestSettingsRepository(t *testing.T) {
	repo := NewSettingsRepository(newTestDB(t))
	ctx := context.Background()

	_, ok, err := repo.Get(ctx, entity.CurrentEventKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, entity.CurrentEventKey, "Myplant 2025"))
	require.NoError(t, repo.Set(ctx, entity.CurrentEventKey, "Flormart 2025"))
	v, ok, err := repo.Get(ctx, entity.CurrentEventKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Flormart 2025", v)

	require.NoError(t, repo.Delete(ctx, entity.CurrentEventKey))
	_, ok, err = repo.Get(ctx, entity.CurrentEventKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIdempotencyRepository(t *testing.T) {
	repo := NewIdempotencyRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "live", Endpoint: "POST /api/v1/orders", ResponseCode: 201, ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "old", Endpoint: "POST /api/v1/orders", ResponseCode: 201, ExpiresAt: time.Now().Add(-time.Hour),
	}))

	live, err := repo.GetByKey(ctx, "live")
	require.NoError(t, err)
	require.NotNil(t, live)
	assert.Equal(t, 201, live.ResponseCode)

	old, err := repo.GetByKey(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, old)

	require.NoError(t, repo.DeleteExpired(ctx))
}
