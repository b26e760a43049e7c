package database

import (
	"context"
	"testing"

	"github.com/fabioverbena/Event-Manager/internal/config"
	"github.com/fabioverbena/Event-Manager/internal/domain/entity"
	"github.com/fabioverbena/Event-Manager/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateAndSeed(t *testing.T) {
	db, err := Open(&config.DatabaseConfig{Driver: "sqlite", SQLitePath: "file::memory:"}, false)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	categories := repository.NewCategoryRepository(db)
	ctx := context.Background()
	require.NoError(t, SeedDefaultData(ctx, categories))
	// a second run keeps the existing rows
	require.NoError(t, SeedDefaultData(ctx, categories))

	list, err := categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(entity.DefaultCategories()))
	assert.Equal(t, "ESPOSITORI", list[0].Name)

	children, err := categories.Children(ctx, entity.CategoryNonEspositori)
	require.NoError(t, err)
	assert.Len(t, children, 5)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"}, false)
	assert.Error(t, err)
}
