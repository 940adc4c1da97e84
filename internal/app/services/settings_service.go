package services

import (
	"context"
	"strings"

	"github.com/hostelhub/hostelhub/internal/app/models"
	"github.com/hostelhub/hostelhub/internal/app/repositories"
	"github.com/hostelhub/hostelhub/internal/pkg/apperrors"
)

// SettingsService handles key-value administrative settings
type SettingsService struct {
	settings *repositories.SettingsRepository
}

// NewSettingsService creates a new settings service instance
func NewSettingsService(repos *repositories.Repositories) *SettingsService {
	return &SettingsService{settings: repos.SettingsRepository}
}

// Get retrieves a setting by key
func (s *SettingsService) Get(ctx context.Context, key string) (*models.Setting, error) {
	return s.settings.Get(ctx, strings.TrimSpace(key))
}

// Set upserts a setting value
func (s *SettingsService) Set(ctx context.Context, key, value string) (*models.Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, apperrors.NewBadRequestError("Setting key cannot be empty")
	}
	return s.settings.Set(ctx, key, value)
}

// List retrieves all settings
func (s *SettingsService) List(ctx context.Context) ([]*models.Setting, error) {
	return s.settings.List(ctx)
}
