package repository

import (
	"context"
	"errors"

	"github.com/fabioverbena/Event-Manager/internal/domain/entity"
	domainRepo "github.com/fabioverbena/Event-Manager/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var s entity.Setting
	err := r.db.WithContext(ctx).First(&s, "chiave = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return s.Value, true, nil
}

func (r *settingsRepository) Set(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chiave"}},
			DoUpdates: clause.AssignmentColumns([]string{"valore", "updated_at"}),
		}).
		Create(&entity.Setting{Key: key, Value: value}).Error
}

func (r *settingsRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&entity.Setting{}, "chiave = ?", key).Error
}
