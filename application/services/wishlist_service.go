package services

import (
	"context"

	"go.uber.org/zap"

	"sweetshop-backend/application/ports"
	"sweetshop-backend/domain/cart"
	"sweetshop-backend/domain/shop"
	apperrors "sweetshop-backend/pkg/errors"
	"sweetshop-backend/pkg/utils"
)

// WishlistService manages per-user wishlists with the same whole-record
// overwrite shape the cart uses.
type WishlistService struct {
	wishlists ports.WishlistRepository
	logger    *zap.Logger
}

// NewWishlistService creates the wishlist service.
func NewWishlistService(wishlists ports.WishlistRepository, logger *zap.Logger) *WishlistService {
	return &WishlistService{wishlists: wishlists, logger: logger}
}

// Get returns the user's wishlist, empty when none has been saved yet.
func (s *WishlistService) Get(ctx context.Context, userID string) (*shop.Wishlist, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}
	w, err := s.wishlists.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return &shop.Wishlist{ID: userID, Items: []cart.LineItem{}}, nil
	}
	return w, nil
}

// Save replaces the user's wishlist wholesale.
func (s *WishlistService) Save(ctx context.Context, userID string, items []cart.LineItem) (*shop.Wishlist, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}
	for _, item := range items {
		if item.ProductID == "" {
			return nil, apperrors.NewValidationError("wishlist item is missing productId")
		}
	}

	w := shop.Wishlist{
		ID:        userID,
		Items:     items,
		UpdatedAt: utils.NowRFC3339(),
	}
	if err := s.wishlists.Put(ctx, w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Clear removes the user's wishlist record.
func (s *WishlistService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.NewValidationError("user id is required")
	}
	return s.wishlists.Delete(ctx, userID)
}
