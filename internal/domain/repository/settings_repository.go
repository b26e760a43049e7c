package repository

import (
	"context"
)

// SettingsRepository stores application-wide key/value settings
type SettingsRepository interface {
	// Get returns the value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
