package services

import (
	"context"

	"go.uber.org/zap"

	"sweetshop-backend/application/ports"
	"sweetshop-backend/domain/shop"
	apperrors "sweetshop-backend/pkg/errors"
	"sweetshop-backend/pkg/utils"
)

const cacheKeySettings = "settings:all"

// SettingsService manages the fixed-key site settings the storefront
// reads on every page load (theme, seasonal toggles, banner text).
type SettingsService struct {
	settings ports.SettingsRepository
	cache    ports.Cache
	logger   *zap.Logger
}

// NewSettingsService creates the settings service.
func NewSettingsService(settings ports.SettingsRepository, cache ports.Cache, logger *zap.Logger) *SettingsService {
	return &SettingsService{settings: settings, cache: cache, logger: logger}
}

// All returns every setting.
func (s *SettingsService) All(ctx context.Context) ([]shop.SiteSetting, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, cacheKeySettings); ok {
			if settings, ok := cached.([]shop.SiteSetting); ok {
				return settings, nil
			}
		}
	}

	settings, err := s.settings.Scan(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKeySettings, settings, catalogCacheTTL)
	}
	return settings, nil
}

// Get returns one setting by key.
func (s *SettingsService) Get(ctx context.Context, key string) (*shop.SiteSetting, error) {
	if key == "" {
		return nil, apperrors.NewValidationError("setting key is required")
	}
	setting, err := s.settings.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, apperrors.NewNotFoundError("setting " + key)
	}
	return setting, nil
}

// Set creates or overwrites a setting.
func (s *SettingsService) Set(ctx context.Context, key, value string) (*shop.SiteSetting, error) {
	if key == "" {
		return nil, apperrors.NewValidationError("setting key is required")
	}
	setting := shop.SiteSetting{
		Key:       key,
		Value:     value,
		UpdatedAt: utils.NowRFC3339(),
	}
	if err := s.settings.Put(ctx, setting); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, cacheKeySettings); err != nil {
			s.logger.Warn("settings cache invalidation failed", zap.Error(err))
		}
	}
	return &setting, nil
}
