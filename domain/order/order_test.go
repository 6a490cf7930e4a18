package order

import (
	"testing"

	"sweetshop-backend/domain/cart"

	"github.com/stretchr/testify/assert"
)

func TestSubtotal(t *testing.T) {
	items := cart.Snapshot{
		{ProductID: "p1", Price: 10, Quantity: 2},
		{ProductID: "p2", Price: 3.5, Quantity: 4},
	}
	assert.InDelta(t, 34, Subtotal(items), 1e-9)
	assert.Zero(t, Subtotal(nil))
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusShipped))
	assert.True(t, StatusShipped.CanTransitionTo(StatusDelivered))

	assert.False(t, StatusPending.CanTransitionTo(StatusDelivered))
	assert.False(t, StatusDelivered.CanTransitionTo(StatusPending))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusConfirmed))
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.False(t, Status("unknown").Valid())
}
