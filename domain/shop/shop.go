// Package shop holds the small storefront documents that share one CRUD
// shape: reviews, wishlists, promo codes, newsletter subscriptions, stock
// notifications and site settings.
package shop

import (
	"strings"
	"time"

	"sweetshop-backend/domain/cart"
)

// Review is a customer review attached to a product.
type Review struct {
	ID        string `json:"id" dynamodbav:"id"`
	ProductID string `json:"productId" dynamodbav:"productId" validate:"required"`
	Author    string `json:"author" dynamodbav:"author" validate:"required"`
	Rating    int    `json:"rating" dynamodbav:"rating" validate:"min=1,max=5"`
	Text      string `json:"text" dynamodbav:"text"`
	Approved  bool   `json:"approved" dynamodbav:"approved"`
	CreatedAt string `json:"createdAt" dynamodbav:"createdAt"`
}

// Wishlist is one record per user, overwritten wholesale on every change,
// the same shape as the remote cart record.
type Wishlist struct {
	ID        string          `json:"id" dynamodbav:"id"` // user identifier
	Items     []cart.LineItem `json:"items" dynamodbav:"items"`
	UpdatedAt string          `json:"updatedAt" dynamodbav:"updatedAt"`
}

// PromoCode is a discount code with a validity window.
type PromoCode struct {
	Code      string  `json:"code" dynamodbav:"code"`
	Percent   float64 `json:"percent" dynamodbav:"percent"` // 0 < Percent <= 100
	Active    bool    `json:"active" dynamodbav:"active"`
	ExpiresAt string  `json:"expiresAt,omitempty" dynamodbav:"expiresAt,omitempty"`
	MaxUses   int     `json:"maxUses,omitempty" dynamodbav:"maxUses,omitempty"`
	Uses      int     `json:"uses" dynamodbav:"uses"`
}

// Usable reports whether the code can be applied at the given moment.
func (p PromoCode) Usable(now time.Time) bool {
	if !p.Active || p.Percent <= 0 || p.Percent > 100 {
		return false
	}
	if p.MaxUses > 0 && p.Uses >= p.MaxUses {
		return false
	}
	if p.ExpiresAt != "" {
		exp, err := time.Parse(time.RFC3339, p.ExpiresAt)
		if err != nil || now.After(exp) {
			return false
		}
	}
	return true
}

// DiscountOn returns the discount amount the code grants on a subtotal.
func (p PromoCode) DiscountOn(subtotal float64) float64 {
	return subtotal * p.Percent / 100
}

// NewsletterSubscription is one record per subscriber email.
type NewsletterSubscription struct {
	Email     string `json:"email" dynamodbav:"email"`
	CreatedAt string `json:"createdAt" dynamodbav:"createdAt"`
}

// StockNotification records a request to be emailed when a product is back
// in stock. Notified flips once the email is sent.
type StockNotification struct {
	ID        string `json:"id" dynamodbav:"id"`
	ProductID string `json:"productId" dynamodbav:"productId"`
	Email     string `json:"email" dynamodbav:"email"`
	Notified  bool   `json:"notified" dynamodbav:"notified"`
	CreatedAt string `json:"createdAt" dynamodbav:"createdAt"`
}

// SiteSetting is a fixed-key record for storefront configuration such as
// the active theme or seasonal decoration toggles.
type SiteSetting struct {
	Key       string `json:"key" dynamodbav:"key"`
	Value     string `json:"value" dynamodbav:"value"`
	UpdatedAt string `json:"updatedAt" dynamodbav:"updatedAt"`
}

// NormalizeEmail lowercases and trims an email for use as a document key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
