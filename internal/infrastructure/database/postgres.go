package database

import (
	"context"
	"fmt"

	"github.com/fabioverbena/Event-Manager/internal/config"
	"github.com/fabioverbena/Event-Manager/internal/domain/entity"
	domainRepo "github.com/fabioverbena/Event-Manager/internal/domain/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the database selected by cfg.Driver
func Open(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	switch cfg.Driver {
	case "", "postgres":
		return NewPostgresDB(cfg, debug)
	case "sqlite":
		return NewSQLiteDB(cfg.SQLitePath, debug)
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)

	log.Info().Str("host", cfg.Host).Str("db", cfg.Name).Msg("connected to PostgreSQL")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("running database migrations")

	err := db.AutoMigrate(
		// Catalog
		&entity.Category{},
		&entity.Product{},

		// CRM
		&entity.Customer{},

		// Orders
		&entity.Order{},
		&entity.OrderLine{},

		// System
		&entity.Setting{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("database migrations completed")
	return nil
}

// SeedDefaultData creates the fixed category tree. Existing rows are kept
// as they are, so renamed categories survive restarts.
func SeedDefaultData(ctx context.Context, categories domainRepo.CategoryRepository) error {
	defaults := entity.DefaultCategories()
	if err := categories.EnsureDefaults(ctx, defaults); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	log.Info().Int("categories", len(defaults)).Msg("default data seeded")
	return nil
}
