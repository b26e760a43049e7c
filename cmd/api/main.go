package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fabioverbena/Event-Manager/internal/application/service"
	"github.com/fabioverbena/Event-Manager/internal/config"
	"github.com/fabioverbena/Event-Manager/internal/domain/repository"
	"github.com/fabioverbena/Event-Manager/internal/infrastructure/cache"
	"github.com/fabioverbena/Event-Manager/internal/infrastructure/database"
	infraRepo "github.com/fabioverbena/Event-Manager/internal/infrastructure/repository"
	"github.com/fabioverbena/Event-Manager/internal/presentation/http/dto/request"
	"github.com/fabioverbena/Event-Manager/internal/presentation/http/handler"
	"github.com/fabioverbena/Event-Manager/internal/presentation/http/routes"
	"github.com/fabioverbena/Event-Manager/pkg/document"
	"github.com/fabioverbena/Event-Manager/pkg/leasing"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const idempotencyPurgeInterval = time.Hour

func setupLogger(cfg *config.LogConfig) {
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

func company(cfg *config.DocumentsConfig) document.Company {
	c := document.DefaultCompany
	if cfg.LegalName != "" {
		c.LegalName = cfg.LegalName
	}
	if cfg.Address != "" {
		c.Address = cfg.Address
	}
	if cfg.Phones != "" {
		c.Phones = cfg.Phones
	}
	if cfg.Emails != "" {
		c.Emails = cfg.Emails
	}
	if cfg.IBAN != "" {
		c.IBAN = cfg.IBAN
	}
	return c
}

// purgeIdempotencyKeys deletes expired keys until ctx is cancelled
func purgeIdempotencyKeys(ctx context.Context, repo repository.IdempotencyRepository) {
	ticker := time.NewTicker(idempotencyPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				log.Warn().Err(err).Msg("purge idempotency keys")
			}
		}
	}
}

func main() {
	// Load configuration
	cfg := config.Load()
	setupLogger(&cfg.Log)

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Open(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("failed to connect to database")
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Initialize repositories
	customerRepo := infraRepo.NewCustomerRepository(db)
	categoryRepo := infraRepo.NewCategoryRepository(db)
	productRepo := infraRepo.NewProductRepository(db)
	orderRepo := infraRepo.NewOrderRepository(db)
	settingsRepo := infraRepo.NewSettingsRepository(db)
	analyticsRepo := infraRepo.NewAnalyticsRepository(db)
	idempotencyRepo := infraRepo.NewIdempotencyRepository(db)

	if err := database.SeedDefaultData(ctx, categoryRepo); err != nil {
		log.Warn().Err(err).Msg("failed to seed default data")
	}

	// The dashboard cache is optional; without Redis every request hits the database
	var rdb *redis.Client
	statsCache := cache.NewNoop()
	if cfg.Redis.URL != "" {
		rdb, err = cache.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, dashboard cache disabled")
			rdb = nil
		} else {
			statsCache = cache.NewRedisCache(rdb, cfg.App.Name+":")
			defer rdb.Close()
		}
	}

	if err := request.RegisterValidators(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	// Initialize services
	settingsService := service.NewSettingsService(settingsRepo)
	dashboardService := service.NewDashboardService(analyticsRepo, statsCache, cfg.Redis.StatsTTL)
	customerService := service.NewCustomerService(customerRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, customerRepo, settingsService, dashboardService)

	renderer := document.NewRenderer(company(&cfg.Documents), document.WithLogoPaths(cfg.Documents.LogoPaths...))
	documentService := service.NewDocumentService(
		orderService,
		orderRepo,
		productRepo,
		settingsService,
		renderer,
		leasing.NewTermsBook(cfg.Leasing.Terms),
		service.DocumentOptions{
			DefaultCopies: cfg.Documents.DefaultCopies,
			MaxCopies:     cfg.Documents.MaxCopies,
			LeasingCodes:  cfg.Leasing.CodeModels,
		},
	)

	// Initialize handlers
	handlers := &routes.Handlers{
		Customer:  handler.NewCustomerHandler(customerService, documentService),
		Category:  handler.NewCategoryHandler(categoryService),
		Product:   handler.NewProductHandler(productService, documentService),
		Order:     handler.NewOrderHandler(orderService, documentService),
		Document:  handler.NewDocumentHandler(documentService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Settings:  handler.NewSettingsHandler(settingsService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		DB:              db,
		Redis:           rdb,
		IdempotencyRepo: idempotencyRepo,
		Done:            ctx.Done(),
	})

	go purgeIdempotencyKeys(ctx, idempotencyRepo)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("app", cfg.App.Name).
			Str("env", cfg.App.Env).
			Str("port", cfg.App.Port).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	cancel()

	timeout := cfg.App.ShutdownTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server exited")
}
