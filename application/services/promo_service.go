package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"sweetshop-backend/application/ports"
	"sweetshop-backend/domain/shop"
	apperrors "sweetshop-backend/pkg/errors"
)

// PromoService is the admin surface for discount codes. Checkout-time
// validation lives in OrderService.
type PromoService struct {
	promos ports.PromoCodeRepository
	logger *zap.Logger
}

// NewPromoService creates the promo code service.
func NewPromoService(promos ports.PromoCodeRepository, logger *zap.Logger) *PromoService {
	return &PromoService{promos: promos, logger: logger}
}

// Create stores a new promo code. The code itself is the key and is
// uppercased for case-insensitive entry at checkout.
func (s *PromoService) Create(ctx context.Context, p shop.PromoCode) (*shop.PromoCode, error) {
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	if p.Code == "" {
		return nil, apperrors.NewValidationError("code is required")
	}
	if p.Percent <= 0 || p.Percent > 100 {
		return nil, apperrors.NewValidationError("percent must be between 0 and 100")
	}
	if p.ExpiresAt != "" {
		if _, err := time.Parse(time.RFC3339, p.ExpiresAt); err != nil {
			return nil, apperrors.NewValidationError("expiresAt must be RFC 3339")
		}
	}

	existing, err := s.promos.Get(ctx, p.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("promo code already exists: " + p.Code)
	}

	p.Uses = 0
	if err := s.promos.Put(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("promo code created", zap.String("code", p.Code), zap.Float64("percent", p.Percent))
	return &p, nil
}

// List returns every promo code.
func (s *PromoService) List(ctx context.Context) ([]shop.PromoCode, error) {
	return s.promos.Scan(ctx)
}

// Deactivate turns a code off without deleting its usage history.
func (s *PromoService) Deactivate(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return apperrors.NewValidationError("code is required")
	}
	return s.promos.Update(ctx, code, map[string]interface{}{"active": false})
}

// Delete removes a code entirely.
func (s *PromoService) Delete(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return apperrors.NewValidationError("code is required")
	}
	return s.promos.Delete(ctx, code)
}
