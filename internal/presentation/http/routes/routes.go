package routes

import (
	"github.com/fabioverbena/Event-Manager/internal/config"
	domainRepo "github.com/fabioverbena/Event-Manager/internal/domain/repository"
	"github.com/fabioverbena/Event-Manager/internal/presentation/http/handler"
	"github.com/fabioverbena/Event-Manager/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Customer  *handler.CustomerHandler
	Category  *handler.CategoryHandler
	Product   *handler.ProductHandler
	Order     *handler.OrderHandler
	Document  *handler.DocumentHandler
	Dashboard *handler.DashboardHandler
	Settings  *handler.SettingsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	DB              *gorm.DB
	Redis           *redis.Client // nil when the cache is disabled
	IdempotencyRepo domainRepo.IdempotencyRepository
	// Done stops background work started by Setup
	Done <-chan struct{}
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", handler.Health(deps.DB, deps.Redis))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	if deps.Cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: deps.Cfg.RateLimit.RequestsPerSecond,
			BurstSize:         deps.Cfg.RateLimit.Burst,
		})
		go rateLimiter.Run(deps.Done)
		v1.Use(rateLimiter.Middleware())
	}

	v1.GET("/dashboard/stats", h.Dashboard.GetStats)

	settings := v1.Group("/settings")
	{
		settings.GET("/current-event", h.Settings.GetCurrentEvent)
		settings.PUT("/current-event", h.Settings.SetCurrentEvent)
		settings.DELETE("/current-event", h.Settings.ClearCurrentEvent)
	}

	registerCustomerRoutes(v1, h)
	registerCategoryRoutes(v1, h)
	registerProductRoutes(v1, h)
	registerOrderRoutes(v1, h, deps)

	v1.GET("/forms/blank", h.Document.BlankForm)
	v1.GET("/leasing/match", h.Document.LeasingMatch)

	return router
}

func registerCustomerRoutes(v1 *gin.RouterGroup, h *Handlers) {
	customers := v1.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/search", h.Customer.Search)
		customers.GET("/import/template", h.Customer.Template)
		customers.POST("/import", h.Customer.Import)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerCategoryRoutes(v1 *gin.RouterGroup, h *Handlers) {
	categories := v1.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.POST("", h.Category.Create)
		categories.GET("/:id", h.Category.Get)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
	}
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/search", h.Product.Search)
		products.GET("/generate-code", h.Product.GenerateCode)
		products.GET("/import/template", h.Product.Template)
		products.POST("/import", h.Product.Import)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerOrderRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := v1.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Order.Create)
		orders.POST("/preview", h.Order.Preview)
		orders.GET("/events", h.Order.Events)
		orders.GET("/export", h.Order.Export)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id", h.Order.Update)
		orders.DELETE("/:id", h.Order.Delete)
		orders.GET("/:id/transitions", h.Order.Transitions)
		orders.PATCH("/:id/status", h.Order.UpdateStatus)
		orders.GET("/:id/pdf", h.Order.PDF)
	}
}
