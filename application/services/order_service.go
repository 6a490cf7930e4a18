package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sweetshop-backend/application/ports"
	"sweetshop-backend/domain/cart"
	"sweetshop-backend/domain/order"
	"sweetshop-backend/domain/shop"
	apperrors "sweetshop-backend/pkg/errors"
	"sweetshop-backend/pkg/observability"
	"sweetshop-backend/pkg/utils"
)

// PlaceOrderInput carries everything checkout submits.
type PlaceOrderInput struct {
	UserID    string
	Customer  order.Customer
	Items     cart.Snapshot
	PromoCode string
}

// OrderService places and manages orders. Side effects after the order
// record is stored (confirmation email, staff notification, event publish)
// are best effort: their failure is logged, the order stands.
type OrderService struct {
	orders    ports.OrderRepository
	promos    ports.PromoCodeRepository
	mailer    ports.Mailer
	notifier  ports.Notifier
	publisher ports.EventPublisher
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewOrderService creates the order service.
func NewOrderService(
	orders ports.OrderRepository,
	promos ports.PromoCodeRepository,
	mailer ports.Mailer,
	notifier ports.Notifier,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		promos:    promos,
		mailer:    mailer,
		notifier:  notifier,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// PlaceOrder validates the checkout payload, applies any promo code,
// stores the order and fires the follow-up notifications.
func (s *OrderService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*order.Order, error) {
	start := time.Now()

	if err := validateCheckout(input); err != nil {
		return nil, err
	}

	subtotal := order.Subtotal(input.Items)
	discount := 0.0
	appliedCode := ""

	if code := strings.TrimSpace(input.PromoCode); code != "" {
		promo, err := s.validatePromo(ctx, code)
		if err != nil {
			return nil, err
		}
		discount = promo.DiscountOn(subtotal)
		appliedCode = promo.Code
	}

	now := utils.NowRFC3339()
	o := order.Order{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		Customer:  input.Customer,
		Items:     input.Items.Clone(),
		Subtotal:  subtotal,
		Discount:  discount,
		Total:     subtotal - discount,
		PromoCode: appliedCode,
		Status:    order.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.orders.Put(ctx, o); err != nil {
		s.metrics.Count(ctx, observability.MetricStoreErrors)
		return nil, apperrors.Wrap(err, "failed to store order")
	}

	if appliedCode != "" {
		s.consumePromo(ctx, appliedCode)
	}
	s.notifyOrderPlaced(ctx, o)

	s.metrics.Count(ctx, observability.MetricOrdersPlaced)
	s.metrics.Duration(ctx, observability.MetricOrderDuration, time.Since(start))
	s.logger.Info("order placed",
		zap.String("orderID", o.ID),
		zap.Float64("total", o.Total),
		zap.Int("items", len(o.Items)),
	)
	return &o, nil
}

// GetOrder fetches one order by id.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("order id is required")
	}
	o, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperrors.NewNotFoundError("order")
	}
	return o, nil
}

// ListOrders returns orders newest first, optionally narrowed to one user.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]order.Order, error) {
	all, err := s.orders.Scan(ctx)
	if err != nil {
		return nil, err
	}

	out := all
	if userID != "" {
		out = out[:0]
		for _, o := range all {
			if o.UserID == userID {
				out = append(out, o)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

// UpdateStatus advances an order through fulfilment, enforcing the
// allowed transitions.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, next order.Status) (*order.Order, error) {
	if !next.Valid() {
		return nil, apperrors.NewValidationError("unknown order status: " + string(next))
	}
	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransitionTo(next) {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("cannot change order status from %s to %s", o.Status, next))
	}

	patch := map[string]interface{}{
		"status":    string(next),
		"updatedAt": utils.NowRFC3339(),
	}
	if err := s.orders.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	o.Status = next
	o.UpdatedAt = patch["updatedAt"].(string)
	return o, nil
}

// ValidatePromoCode checks a code for checkout preview and returns the
// discount it would grant on the given subtotal.
func (s *OrderService) ValidatePromoCode(ctx context.Context, code string, subtotal float64) (float64, error) {
	promo, err := s.validatePromo(ctx, strings.TrimSpace(code))
	if err != nil {
		return 0, err
	}
	return promo.DiscountOn(subtotal), nil
}

func (s *OrderService) validatePromo(ctx context.Context, code string) (*shop.PromoCode, error) {
	code = strings.ToUpper(code)
	if code == "" {
		return nil, apperrors.NewValidationError("promo code is required")
	}
	promo, err := s.promos.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if promo == nil || !promo.Usable(time.Now()) {
		return nil, apperrors.NewValidationError("promo code is invalid or expired")
	}
	return promo, nil
}

func (s *OrderService) consumePromo(ctx context.Context, code string) {
	if err := s.promos.IncrementUses(ctx, code); err != nil {
		s.logger.Warn("promo use count not incremented", zap.String("code", code), zap.Error(err))
	}
}

func (s *OrderService) notifyOrderPlaced(ctx context.Context, o order.Order) {
	if s.mailer != nil && o.Customer.Email != "" {
		subject := fmt.Sprintf("Order %s confirmed", shortID(o.ID))
		body := fmt.Sprintf(
			"Hi %s,\n\nThank you for your order!\n\n%s\nSubtotal: %.2f\nDiscount: %.2f\nTotal: %.2f\n\nWe will be in touch when it ships.",
			o.Customer.Name, order.Summary(o.Items), o.Subtotal, o.Discount, o.Total,
		)
		if err := s.mailer.Send(ctx, o.Customer.Email, subject, body); err != nil {
			s.metrics.Count(ctx, observability.MetricEmailFailures)
			s.logger.Warn("order confirmation email failed", zap.String("orderID", o.ID), zap.Error(err))
		} else {
			s.metrics.Count(ctx, observability.MetricEmailsSent)
		}
	}

	if s.notifier != nil {
		msg := fmt.Sprintf("New order %s\n%sTotal: %.2f\nCustomer: %s (%s)",
			shortID(o.ID), order.Summary(o.Items), o.Total, o.Customer.Name, o.Customer.Phone)
		if err := s.notifier.Notify(ctx, msg); err != nil {
			s.logger.Warn("staff notification failed", zap.String("orderID", o.ID), zap.Error(err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, ports.EventOrderPlaced, o); err != nil {
			s.logger.Warn("order event not published", zap.String("orderID", o.ID), zap.Error(err))
		}
	}
}

func validateCheckout(input PlaceOrderInput) error {
	if len(input.Items) == 0 {
		return apperrors.NewValidationError("cannot place an order with an empty cart")
	}
	for _, item := range input.Items {
		if item.ProductID == "" {
			return apperrors.NewValidationError("order item is missing productId")
		}
		if item.Quantity <= 0 {
			return apperrors.NewValidationError("order item quantity must be positive")
		}
	}
	if err := utils.ValidateStruct(input.Customer); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
