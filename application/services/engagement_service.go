package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sweetshop-backend/application/ports"
	"sweetshop-backend/domain/shop"
	apperrors "sweetshop-backend/pkg/errors"
	"sweetshop-backend/pkg/observability"
	"sweetshop-backend/pkg/utils"
)

// EngagementService covers newsletter subscriptions and back-in-stock
// notification requests.
type EngagementService struct {
	newsletter ports.NewsletterRepository
	stock      ports.StockNotificationRepository
	products   ports.ProductRepository
	mailer     ports.Mailer
	publisher  ports.EventPublisher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewEngagementService creates the engagement service.
func NewEngagementService(
	newsletter ports.NewsletterRepository,
	stock ports.StockNotificationRepository,
	products ports.ProductRepository,
	mailer ports.Mailer,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *EngagementService {
	return &EngagementService{
		newsletter: newsletter,
		stock:      stock,
		products:   products,
		mailer:     mailer,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
	}
}

// Subscribe adds an email to the newsletter. Subscribing twice is a
// no-op, not an error.
func (s *EngagementService) Subscribe(ctx context.Context, email string) error {
	email = shop.NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return err
	}

	existing, err := s.newsletter.Get(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	sub := shop.NewsletterSubscription{
		Email:     email,
		CreatedAt: utils.NowRFC3339(),
	}
	if err := s.newsletter.Put(ctx, sub); err != nil {
		return err
	}
	s.logger.Info("newsletter subscription added", zap.String("email", email))
	return nil
}

// Unsubscribe removes an email from the newsletter.
func (s *EngagementService) Unsubscribe(ctx context.Context, email string) error {
	email = shop.NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return err
	}
	return s.newsletter.Delete(ctx, email)
}

// ListSubscribers returns every newsletter subscription.
func (s *EngagementService) ListSubscribers(ctx context.Context) ([]shop.NewsletterSubscription, error) {
	return s.newsletter.Scan(ctx)
}

// RequestStockAlert records a request to be emailed when a product comes
// back in stock.
func (s *EngagementService) RequestStockAlert(ctx context.Context, productID, email string) (*shop.StockNotification, error) {
	email = shop.NormalizeEmail(email)
	if productID == "" {
		return nil, apperrors.NewValidationError("productId is required")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	n := shop.StockNotification{
		ID:        uuid.New().String(),
		ProductID: productID,
		Email:     email,
		CreatedAt: utils.NowRFC3339(),
	}
	if err := s.stock.Put(ctx, n); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, ports.EventStockSubscribed, n); err != nil {
			s.logger.Warn("stock subscription event not published", zap.Error(err))
		}
	}
	return &n, nil
}

// NotifyBackInStock emails everyone waiting on a product and marks their
// requests notified. Called when a product's stock flag flips back on.
// One recipient failing does not stop the rest.
func (s *EngagementService) NotifyBackInStock(ctx context.Context, productID string) (int, error) {
	if productID == "" {
		return 0, apperrors.NewValidationError("productId is required")
	}

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, apperrors.NewNotFoundError("product")
	}

	pending, err := s.stock.Scan(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, n := range pending {
		if n.ProductID != productID || n.Notified {
			continue
		}

		subject := fmt.Sprintf("%s is back in stock", product.Name)
		body := fmt.Sprintf("Good news! %s is available again.\n\nPrice: %.2f", product.Name, product.Price)
		if err := s.mailer.Send(ctx, n.Email, subject, body); err != nil {
			s.metrics.Count(ctx, observability.MetricEmailFailures)
			s.logger.Warn("stock alert email failed",
				zap.String("email", n.Email),
				zap.String("productID", productID),
				zap.Error(err),
			)
			continue
		}
		s.metrics.Count(ctx, observability.MetricEmailsSent)
		sent++

		if err := s.stock.Update(ctx, n.ID, map[string]interface{}{"notified": true}); err != nil {
			s.logger.Warn("stock alert not marked notified", zap.String("id", n.ID), zap.Error(err))
		}
	}

	s.logger.Info("back-in-stock alerts sent",
		zap.String("productID", productID),
		zap.Int("sent", sent),
	)
	return sent, nil
}

func validateEmail(email string) error {
	if email == "" || !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return apperrors.NewValidationError("a valid email address is required")
	}
	return nil
}
