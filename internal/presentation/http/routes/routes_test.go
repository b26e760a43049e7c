package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fabioverbena/Event-Manager/internal/application/service"
	"github.com/fabioverbena/Event-Manager/internal/config"
	"github.com/fabioverbena/Event-Manager/internal/domain/entity"
	"github.com/fabioverbena/Event-Manager/internal/infrastructure/cache"
	"github.com/fabioverbena/Event-Manager/internal/infrastructure/database"
	"github.com/fabioverbena/Event-Manager/internal/infrastructure/repository"
	"github.com/fabioverbena/Event-Manager/internal/presentation/http/dto/request"
	"github.com/fabioverbena/Event-Manager/internal/presentation/http/handler"
	"github.com/fabioverbena/Event-Manager/internal/presentation/http/middleware"
	"github.com/fabioverbena/Event-Manager/pkg/document"
	"github.com/fabioverbena/Event-Manager/pkg/leasing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var registerOnce sync.Once

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	registerOnce.Do(func() {
		require.NoError(t, request.RegisterValidators())
	})

	db, err := database.NewSQLiteDB("file::memory:", false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	customerRepo := repository.NewCustomerRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	require.NoError(t, database.SeedDefaultData(context.Background(), categoryRepo))

	settingsService := service.NewSettingsService(repository.NewSettingsRepository(db))
	dashboardService := service.NewDashboardService(repository.NewAnalyticsRepository(db), cache.NewNoop(), time.Minute)
	customerService := service.NewCustomerService(customerRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, customerRepo, settingsService, dashboardService)
	documentService := service.NewDocumentService(orderService, orderRepo, productRepo, settingsService,
		document.NewRenderer(document.DefaultCompany), leasing.NewTermsBook(nil), service.DocumentOptions{})

	h := &Handlers{
		Customer:  handler.NewCustomerHandler(customerService, documentService),
		Category:  handler.NewCategoryHandler(service.NewCategoryService(categoryRepo)),
		Product:   handler.NewProductHandler(productService, documentService),
		Order:     handler.NewOrderHandler(orderService, documentService),
		Document:  handler.NewDocumentHandler(documentService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Settings:  handler.NewSettingsHandler(settingsService),
	}
	return Setup(h, &Deps{
		Cfg:             &config.Config{App: config.AppConfig{Name: "test"}},
		DB:              db,
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
	})
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func createCustomer(t *testing.T, r *gin.Engine, name string) entity.Customer {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/v1/customers", gin.H{"ragione_sociale": name, "provincia": "rn"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var c entity.Customer
	decode(t, w, &c)
	return c
}

func createProduct(t *testing.T, r *gin.Engine, name, price string) entity.Product {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/v1/products", gin.H{
		"categoria_id":   entity.CategoryGemme,
		"nome":           name,
		"prezzo_listino": price,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p entity.Product
	decode(t, w, &p)
	return p
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "connected", body["db"])
	assert.Equal(t, "disabled", body["redis"])
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodGet, "/api/v1/categories", nil)

	w := do(t, r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",path="/api/v1/categories",status="200"}`)
}

func TestRequestIDPropagation(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/categories", nil, middleware.RequestIDHeader, "req-42")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-42", w.Header().Get(middleware.RequestIDHeader))
	env := decode(t, w, nil)
	assert.Equal(t, "req-42", env.Meta.RequestID)
}

func TestValidationErrorsUseJSONNames(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/customers", gin.H{
		"ragione_sociale": "Fiori Rossi",
		"partita_iva":     "123",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decode(t, w, nil)
	assert.False(t, env.Success)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "partita_iva", env.Errors[0].Field)

	w = do(t, r, http.MethodPost, "/api/v1/orders/preview", gin.H{
		"righe": []gin.H{{"prodotto_id": uuid.New(), "quantita": "0"}},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env = decode(t, w, nil)
	require.NotEmpty(t, env.Errors)
	assert.Equal(t, "righe[0].quantita", env.Errors[0].Field)

	w = do(t, r, http.MethodPost, "/api/v1/orders", gin.H{
		"nome_evento": "Myplant 2025",
		"righe":       []gin.H{{"prodotto_id": uuid.New(), "quantita": "1"}},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	env = decode(t, w, nil)
	require.NotEmpty(t, env.Errors)
	assert.Equal(t, "cliente_id", env.Errors[0].Field)
}

func TestBadRequests(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/orders/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/orders/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, decode(t, w, nil).Success)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderLifecycle(t *testing.T) {
	r := newTestRouter(t)
	customer := createCustomer(t, r, "Fiori Rossi")
	product := createProduct(t, r, "Gemme Blu", "12.50")
	assert.Equal(t, "GEM-001", product.Code)

	w := do(t, r, http.MethodPut, "/api/v1/settings/current-event", gin.H{"nome_evento": "Myplant 2025"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/v1/orders", gin.H{
		"cliente_id":         customer.ID,
		"data_ordine":        "2025-02-19",
		"sconto_percentuale": "10",
		"righe":              []gin.H{{"prodotto_id": product.ID, "quantita": "4"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order entity.Order
	decode(t, w, &order)
	assert.Equal(t, 1, order.Number)
	assert.Equal(t, "Myplant 2025", order.EventName)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(45)), order.Total.String())

	w = do(t, r, http.MethodGet, "/api/v1/orders/"+order.ID.String()+"/transitions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var next []struct {
		Stato string `json:"stato"`
	}
	decode(t, w, &next)
	require.NotEmpty(t, next)

	w = do(t, r, http.MethodPatch, "/api/v1/orders/"+order.ID.String()+"/status", gin.H{"stato": next[0].Stato})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/v1/orders/"+order.ID.String()+"/pdf?tipo=preventivo&copie=2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, service.ContentTypePDF, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Preventivo_0001_Fiori Rossi_copie2.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w = do(t, r, http.MethodGet, "/api/v1/orders/"+order.ID.String()+"/pdf?tipo=fattura", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/orders?evento=Myplant%202025", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items []entity.Order `json:"items"`
	}
	decode(t, w, &page)
	assert.Len(t, page.Items, 1)

	w = do(t, r, http.MethodGet, "/api/v1/orders/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.ContentTypeXLSX, w.Header().Get("Content-Type"))

	w = do(t, r, http.MethodDelete, "/api/v1/orders/"+order.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, r, http.MethodGet, "/api/v1/orders/"+order.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderDateMustBeISO(t *testing.T) {
	r := newTestRouter(t)
	customer := createCustomer(t, r, "Fiori Rossi")
	product := createProduct(t, r, "Gemme Blu", "10")

	w := do(t, r, http.MethodPost, "/api/v1/orders", gin.H{
		"cliente_id":  customer.ID,
		"nome_evento": "Myplant",
		"data_ordine": "19/02/2025",
		"righe":       []gin.H{{"prodotto_id": product.ID, "quantita": "1"}},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decode(t, w, nil)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "data_ordine", env.Errors[0].Field)
}

func TestCreateOrderIsIdempotent(t *testing.T) {
	r := newTestRouter(t)
	customer := createCustomer(t, r, "Fiori Rossi")
	product := createProduct(t, r, "Gemme Blu", "10")

	body := gin.H{
		"cliente_id":  customer.ID,
		"nome_evento": "Myplant",
		"righe":       []gin.H{{"prodotto_id": product.ID, "quantita": "2"}},
	}
	first := do(t, r, http.MethodPost, "/api/v1/orders", body, middleware.IdempotencyKeyHeader, "k-1")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

	second := do(t, r, http.MethodPost, "/api/v1/orders", body, middleware.IdempotencyKeyHeader, "k-1")
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get(middleware.ReplayedHeader))
	assert.Equal(t, first.Body.String(), second.Body.String())

	body["nome_evento"] = "Flormart"
	conflict := do(t, r, http.MethodPost, "/api/v1/orders", body, middleware.IdempotencyKeyHeader, "k-1")
	assert.Equal(t, http.StatusUnprocessableEntity, conflict.Code)

	w := do(t, r, http.MethodGet, "/api/v1/orders", nil)
	var page struct {
		Items []entity.Order `json:"items"`
	}
	decode(t, w, &page)
	assert.Len(t, page.Items, 1)
}

func TestBlankFormAndLeasingMatch(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/forms/blank?tipo=Espositori&copie=2&leasing=leo4", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, service.ContentTypePDF, w.Header().Get("Content-Type"))

	w = do(t, r, http.MethodGet, "/api/v1/leasing/match?nome=Leonardo%20IV", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/leasing/match", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCurrentEventSettings(t *testing.T) {
	r := newTestRouter(t)

	var view struct {
		NomeEvento string `json:"nome_evento"`
		Impostato  bool   `json:"impostato"`
	}
	w := do(t, r, http.MethodGet, "/api/v1/settings/current-event", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &view)
	assert.False(t, view.Impostato)

	w = do(t, r, http.MethodPut, "/api/v1/settings/current-event", gin.H{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	do(t, r, http.MethodPut, "/api/v1/settings/current-event", gin.H{"nome_evento": " Myplant "})
	w = do(t, r, http.MethodGet, "/api/v1/settings/current-event", nil)
	decode(t, w, &view)
	assert.Equal(t, "Myplant", view.NomeEvento)
	assert.True(t, view.Impostato)

	w = do(t, r, http.MethodDelete, "/api/v1/settings/current-event", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDashboardStats(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, decode(t, w, nil).Success)
}
