package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePairs(t *testing.T) {
	got := ParsePairs(" ESP-004=leo4, ESP-010 = titano ,broken,=leo2,ESP-1=")
	assert.Equal(t, map[string]string{"ESP-004": "leo4", "ESP-010": "titano"}, got)
	assert.Empty(t, ParsePairs(""))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LEASING_CODE_MODELS", "ESP-004=leo4")
	cfg := Load()

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, []string{"./assets/logo.png", "./assets/logo.jpg"}, cfg.Documents.LogoPaths)
	assert.Equal(t, 10, cfg.Documents.MaxCopies)
	assert.Equal(t, "leo4", cfg.Leasing.CodeModels["ESP-004"])
	assert.Empty(t, cfg.Redis.URL)
	assert.Contains(t, cfg.Database.DSN(), "dbname=event_manager")
}
