package service

import (
	"context"
	"strings"

	"github.com/fabioverbena/Event-Manager/internal/domain/entity"
	"github.com/fabioverbena/Event-Manager/internal/domain/repository"
	"github.com/fabioverbena/Event-Manager/pkg/apperror"
)

// SettingsService handles the application-wide settings
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// CurrentEvent returns the fair name pre-filled on new orders and blank
// forms, and whether one is set
func (s *SettingsService) CurrentEvent(ctx context.Context) (string, bool, error) {
	value, ok, err := s.settingsRepo.Get(ctx, entity.CurrentEventKey)
	if err != nil || !ok {
		return "", false, err
	}
	value = strings.TrimSpace(value)
	return value, value != "", nil
}

// SetCurrentEvent stores the current fair name
func (s *SettingsService) SetCurrentEvent(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.NewFieldError("nome_evento", apperror.MsgRequiredField)
	}
	if err := s.settingsRepo.Set(ctx, entity.CurrentEventKey, name); err != nil {
		return "", err
	}
	return name, nil
}

// ClearCurrentEvent removes the current fair name
func (s *SettingsService) ClearCurrentEvent(ctx context.Context) error {
	return s.settingsRepo.Delete(ctx, entity.CurrentEventKey)
}
