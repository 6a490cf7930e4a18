package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sweetshop-backend/application/ports"
	"sweetshop-backend/domain/shop"
	apperrors "sweetshop-backend/pkg/errors"
	"sweetshop-backend/pkg/utils"
)

// ReviewService manages product reviews. New reviews start unapproved and
// stay hidden from the storefront until a moderator approves them.
type ReviewService struct {
	reviews ports.ReviewRepository
	logger  *zap.Logger
}

// NewReviewService creates the review service.
func NewReviewService(reviews ports.ReviewRepository, logger *zap.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, logger: logger}
}

// Submit stores a new review pending moderation.
func (s *ReviewService) Submit(ctx context.Context, r shop.Review) (*shop.Review, error) {
	r.Author = strings.TrimSpace(r.Author)
	if err := utils.ValidateStruct(r); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	r.ID = uuid.New().String()
	r.Approved = false
	r.CreatedAt = utils.NowRFC3339()

	if err := s.reviews.Put(ctx, r); err != nil {
		return nil, err
	}
	s.logger.Info("review submitted", zap.String("reviewID", r.ID), zap.String("productID", r.ProductID))
	return &r, nil
}

// ListForProduct returns approved reviews for a product, newest first.
func (s *ReviewService) ListForProduct(ctx context.Context, productID string) ([]shop.Review, error) {
	if productID == "" {
		return nil, apperrors.NewValidationError("productId is required")
	}
	all, err := s.reviews.Scan(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]shop.Review, 0)
	for _, r := range all {
		if r.ProductID == productID && r.Approved {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

// ListPending returns reviews awaiting moderation, oldest first.
func (s *ReviewService) ListPending(ctx context.Context) ([]shop.Review, error) {
	all, err := s.reviews.Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]shop.Review, 0)
	for _, r := range all {
		if !r.Approved {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}

// Approve makes a review visible on the storefront.
func (s *ReviewService) Approve(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.NewValidationError("review id is required")
	}
	return s.reviews.Update(ctx, id, map[string]interface{}{"approved": true})
}

// Delete removes a review.
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.NewValidationError("review id is required")
	}
	return s.reviews.Delete(ctx, id)
}
