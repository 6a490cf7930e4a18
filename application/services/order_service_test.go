package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sweetshop-backend/domain/cart"
	"sweetshop-backend/domain/order"
	"sweetshop-backend/domain/shop"
	apperrors "sweetshop-backend/pkg/errors"
	"sweetshop-backend/pkg/observability"
)

type fakeOrderRepo struct {
	orders map[string]order.Order
	putErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]order.Order)}
}

func (f *fakeOrderRepo) Put(_ context.Context, o order.Order) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrderRepo) Get(_ context.Context, id string) (*order.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (f *fakeOrderRepo) Scan(_ context.Context) ([]order.Order, error) {
	out := make([]order.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderRepo) Update(_ context.Context, id string, patch map[string]interface{}) error {
	o, ok := f.orders[id]
	if !ok {
		return apperrors.NewNotFoundError("order not found")
	}
	if v, ok := patch["status"]; ok {
		o.Status = order.Status(v.(string))
	}
	if v, ok := patch["updatedAt"]; ok {
		o.UpdatedAt = v.(string)
	}
	f.orders[id] = o
	return nil
}

type fakePromoRepo struct {
	promos map[string]shop.PromoCode
}

func newFakePromoRepo() *fakePromoRepo {
	return &fakePromoRepo{promos: make(map[string]shop.PromoCode)}
}

func (f *fakePromoRepo) Put(_ context.Context, p shop.PromoCode) error {
	f.promos[p.Code] = p
	return nil
}

func (f *fakePromoRepo) Get(_ context.Context, code string) (*shop.PromoCode, error) {
	p, ok := f.promos[code]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakePromoRepo) Scan(_ context.Context) ([]shop.PromoCode, error) {
	out := make([]shop.PromoCode, 0, len(f.promos))
	for _, p := range f.promos {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePromoRepo) Update(_ context.Context, code string, patch map[string]interface{}) error {
	p, ok := f.promos[code]
	if !ok {
		return apperrors.NewNotFoundError("promo code")
	}
	if v, ok := patch["uses"]; ok {
		p.Uses = v.(int)
	}
	if v, ok := patch["active"]; ok {
		p.Active = v.(bool)
	}
	f.promos[code] = p
	return nil
}

func (f *fakePromoRepo) IncrementUses(_ context.Context, code string) error {
	p, ok := f.promos[code]
	if !ok {
		return apperrors.NewNotFoundError("promo code")
	}
	p.Uses++
	f.promos[code] = p
	return nil
}

func (f *fakePromoRepo) Delete(_ context.Context, code string) error {
	delete(f.promos, code)
	return nil
}

type fakeMailer struct {
	sent []string // recipients
	err  error
}

func (f *fakeMailer) Send(_ context.Context, to, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

type fakeNotifier struct {
	messages []string
	err      error
}

func (f *fakeNotifier) Notify(_ context.Context, message string) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, message)
	return nil
}

type fakePublisher struct {
	events []string // detail types
}

func (f *fakePublisher) Publish(_ context.Context, detailType string, _ interface{}) error {
	f.events = append(f.events, detailType)
	return nil
}

type orderFixture struct {
	svc       *OrderService
	orders    *fakeOrderRepo
	promos    *fakePromoRepo
	mailer    *fakeMailer
	notifier  *fakeNotifier
	publisher *fakePublisher
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orders:    newFakeOrderRepo(),
		promos:    newFakePromoRepo(),
		mailer:    &fakeMailer{},
		notifier:  &fakeNotifier{},
		publisher: &fakePublisher{},
	}
	f.svc = NewOrderService(
		f.orders, f.promos, f.mailer, f.notifier, f.publisher,
		observability.NewMetrics("test", nil, zap.NewNop()), zap.NewNop(),
	)
	return f
}

func checkoutInput() PlaceOrderInput {
	return PlaceOrderInput{
		UserID: "u1",
		Customer: order.Customer{
			Name:    "Alex Doe",
			Email:   "alex@example.com",
			Address: "1 Candy Lane",
		},
		Items: cart.Snapshot{
			{ProductID: "p1", Name: "Dark Truffle", Price: 4.5, Quantity: 2},
			{ProductID: "p2", Name: "Nougat Bar", Price: 2.0, Quantity: 1},
		},
	}
}

func TestPlaceOrderStoresAndNotifies(t *testing.T) {
	f := newOrderFixture()

	o, err := f.svc.PlaceOrder(context.Background(), checkoutInput())
	require.NoError(t, err)

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.InDelta(t, 11.0, o.Subtotal, 1e-9)
	assert.InDelta(t, 11.0, o.Total, 1e-9)
	assert.Zero(t, o.Discount)

	_, stored := f.orders.orders[o.ID]
	assert.True(t, stored)
	assert.Equal(t, []string{"alex@example.com"}, f.mailer.sent)
	assert.Len(t, f.notifier.messages, 1)
	assert.Equal(t, []string{"order.placed"}, f.publisher.events)
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	f := newOrderFixture()
	input := checkoutInput()
	input.Items = nil

	_, err := f.svc.PlaceOrder(context.Background(), input)
	assert.True(t, apperrors.IsValidation(err))
}

func TestPlaceOrderRejectsMissingCustomerFields(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	input := checkoutInput()
	input.Customer.Email = ""
	_, err := f.svc.PlaceOrder(ctx, input)
	assert.True(t, apperrors.IsValidation(err))

	input = checkoutInput()
	input.Customer.Address = ""
	_, err = f.svc.PlaceOrder(ctx, input)
	assert.True(t, apperrors.IsValidation(err))

	input = checkoutInput()
	input.Customer.Email = "not-an-email"
	_, err = f.svc.PlaceOrder(ctx, input)
	assert.True(t, apperrors.IsValidation(err))
}

func TestPlaceOrderAppliesPromoAndIncrementsUses(t *testing.T) {
	f := newOrderFixture()
	f.promos.promos["SWEET10"] = shop.PromoCode{Code: "SWEET10", Percent: 10, Active: true}

	input := checkoutInput()
	input.PromoCode = "SWEET10"

	o, err := f.svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	assert.InDelta(t, 1.1, o.Discount, 1e-9)
	assert.InDelta(t, 9.9, o.Total, 1e-9)
	assert.Equal(t, "SWEET10", o.PromoCode)
	assert.Equal(t, 1, f.promos.promos["SWEET10"].Uses)

	// The counter accumulates in the store rather than being rewritten
	// from a read, so a second checkout lands on 2.
	_, err = f.svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 2, f.promos.promos["SWEET10"].Uses)
}

func TestPlaceOrderRejectsUnusablePromo(t *testing.T) {
	f := newOrderFixture()
	f.promos.promos["OLD"] = shop.PromoCode{Code: "OLD", Percent: 10, Active: false}

	input := checkoutInput()
	input.PromoCode = "OLD"
	_, err := f.svc.PlaceOrder(context.Background(), input)
	assert.True(t, apperrors.IsValidation(err))

	input.PromoCode = "MISSING"
	_, err = f.svc.PlaceOrder(context.Background(), input)
	assert.True(t, apperrors.IsValidation(err))
}

func TestPlaceOrderSurvivesNotificationFailures(t *testing.T) {
	f := newOrderFixture()
	f.mailer.err = errors.New("smtp down")
	f.notifier.err = errors.New("telegram down")

	o, err := f.svc.PlaceOrder(context.Background(), checkoutInput())
	require.NoError(t, err)
	_, stored := f.orders.orders[o.ID]
	assert.True(t, stored)
}

func TestPlaceOrderFailsWhenStoreFails(t *testing.T) {
	f := newOrderFixture()
	f.orders.putErr = apperrors.NewStoreUnavailableError("put order", errors.New("throttled"))

	_, err := f.svc.PlaceOrder(context.Background(), checkoutInput())
	require.Error(t, err)
	assert.Empty(t, f.mailer.sent)
	assert.Empty(t, f.publisher.events)
}

func TestUpdateStatusEnforcesTransitions(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	o, err := f.svc.PlaceOrder(ctx, checkoutInput())
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(ctx, o.ID, order.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, updated.Status)

	_, err = f.svc.UpdateStatus(ctx, o.ID, order.StatusDelivered)
	assert.True(t, apperrors.IsConflict(err))

	_, err = f.svc.UpdateStatus(ctx, o.ID, order.Status("bogus"))
	assert.True(t, apperrors.IsValidation(err))
}

func TestListOrdersFiltersByUserNewestFirst(t *testing.T) {
	f := newOrderFixture()
	f.orders.orders["a"] = order.Order{ID: "a", UserID: "u1", CreatedAt: "2026-01-01T00:00:00Z"}
	f.orders.orders["b"] = order.Order{ID: "b", UserID: "u2", CreatedAt: "2026-01-02T00:00:00Z"}
	f.orders.orders["c"] = order.Order{ID: "c", UserID: "u1", CreatedAt: "2026-01-03T00:00:00Z"}

	got, err := f.svc.ListOrders(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}
