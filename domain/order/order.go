package order

import (
	"fmt"

	"sweetshop-backend/domain/cart"
)

// Status tracks an order through fulfilment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var statusTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
}

// CanTransitionTo reports whether the status change is allowed.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Customer holds the contact and delivery details captured at checkout.
type Customer struct {
	Name    string `json:"name" dynamodbav:"name" validate:"required"`
	Email   string `json:"email" dynamodbav:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty" dynamodbav:"phone,omitempty"`
	Address string `json:"address" dynamodbav:"address" validate:"required"`
	Comment string `json:"comment,omitempty" dynamodbav:"comment,omitempty"`
}

// Order is the persisted record of a placed order. Items are the cart
// snapshot frozen at checkout time.
type Order struct {
	ID        string        `json:"id" dynamodbav:"id"`
	UserID    string        `json:"userId,omitempty" dynamodbav:"userId,omitempty"`
	Customer  Customer      `json:"customer" dynamodbav:"customer"`
	Items     cart.Snapshot `json:"items" dynamodbav:"items"`
	Subtotal  float64       `json:"subtotal" dynamodbav:"subtotal"`
	Discount  float64       `json:"discount" dynamodbav:"discount"`
	Total     float64       `json:"total" dynamodbav:"total"`
	PromoCode string        `json:"promoCode,omitempty" dynamodbav:"promoCode,omitempty"`
	Status    Status        `json:"status" dynamodbav:"status"`
	CreatedAt string        `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt string        `json:"updatedAt" dynamodbav:"updatedAt"`
}

// Subtotal sums price*quantity over a snapshot.
func Subtotal(items cart.Snapshot) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Summary renders a short human-readable line listing, used in
// notification messages.
func Summary(items cart.Snapshot) string {
	out := ""
	for _, item := range items {
		out += fmt.Sprintf("%s x%d = %.2f\n", item.Name, item.Quantity, item.Price*float64(item.Quantity))
	}
	return out
}
