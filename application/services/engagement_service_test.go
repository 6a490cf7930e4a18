package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sweetshop-backend/domain/catalog"
	"sweetshop-backend/domain/shop"
	apperrors "sweetshop-backend/pkg/errors"
	"sweetshop-backend/pkg/observability"
)

type fakeNewsletterRepo struct {
	subs map[string]shop.NewsletterSubscription
}

func newFakeNewsletterRepo() *fakeNewsletterRepo {
	return &fakeNewsletterRepo{subs: make(map[string]shop.NewsletterSubscription)}
}

func (f *fakeNewsletterRepo) Put(_ context.Context, s shop.NewsletterSubscription) error {
	f.subs[s.Email] = s
	return nil
}

func (f *fakeNewsletterRepo) Get(_ context.Context, email string) (*shop.NewsletterSubscription, error) {
	s, ok := f.subs[email]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeNewsletterRepo) Scan(_ context.Context) ([]shop.NewsletterSubscription, error) {
	out := make([]shop.NewsletterSubscription, 0, len(f.subs))
	for _, s := range f.subs {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeNewsletterRepo) Delete(_ context.Context, email string) error {
	delete(f.subs, email)
	return nil
}

type fakeStockRepo struct {
	notifications map[string]shop.StockNotification
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{notifications: make(map[string]shop.StockNotification)}
}

func (f *fakeStockRepo) Put(_ context.Context, n shop.StockNotification) error {
	f.notifications[n.ID] = n
	return nil
}

func (f *fakeStockRepo) Scan(_ context.Context) ([]shop.StockNotification, error) {
	out := make([]shop.StockNotification, 0, len(f.notifications))
	for _, n := range f.notifications {
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeStockRepo) Update(_ context.Context, id string, patch map[string]interface{}) error {
	n, ok := f.notifications[id]
	if !ok {
		return apperrors.NewNotFoundError("stock notification not found")
	}
	if v, ok := patch["notified"]; ok {
		n.Notified = v.(bool)
	}
	f.notifications[id] = n
	return nil
}

func (f *fakeStockRepo) Delete(_ context.Context, id string) error {
	delete(f.notifications, id)
	return nil
}

type engagementFixture struct {
	svc        *EngagementService
	newsletter *fakeNewsletterRepo
	stock      *fakeStockRepo
	products   *fakeProductRepo
	mailer     *fakeMailer
	publisher  *fakePublisher
}

func newEngagementFixture() *engagementFixture {
	f := &engagementFixture{
		newsletter: newFakeNewsletterRepo(),
		stock:      newFakeStockRepo(),
		products:   newFakeProductRepo(),
		mailer:     &fakeMailer{},
		publisher:  &fakePublisher{},
	}
	f.svc = NewEngagementService(
		f.newsletter, f.stock, f.products, f.mailer, f.publisher,
		observability.NewMetrics("test", nil, zap.NewNop()), zap.NewNop(),
	)
	return f
}

func TestSubscribeNormalizesAndIsIdempotent(t *testing.T) {
	f := newEngagementFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.Subscribe(ctx, "  Fan@Example.COM "))
	require.NoError(t, f.svc.Subscribe(ctx, "fan@example.com"))

	require.Len(t, f.newsletter.subs, 1)
	_, ok := f.newsletter.subs["fan@example.com"]
	assert.True(t, ok)
}

func TestSubscribeRejectsBadEmail(t *testing.T) {
	f := newEngagementFixture()
	ctx := context.Background()

	assert.True(t, apperrors.IsValidation(f.svc.Subscribe(ctx, "")))
	assert.True(t, apperrors.IsValidation(f.svc.Subscribe(ctx, "not-an-email")))
	assert.True(t, apperrors.IsValidation(f.svc.Subscribe(ctx, "@example.com")))
}

func TestRequestStockAlertStoresAndPublishes(t *testing.T) {
	f := newEngagementFixture()

	n, err := f.svc.RequestStockAlert(context.Background(), "p1", "fan@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.Notified)
	assert.Equal(t, []string{"stock.subscribed"}, f.publisher.events)
}

func TestNotifyBackInStockEmailsPendingOnly(t *testing.T) {
	f := newEngagementFixture()
	f.products.products["p1"] = catalog.Product{ID: "p1", Name: "Sea Salt Caramels", Price: 7.5, InStock: true}
	f.stock.notifications["n1"] = shop.StockNotification{ID: "n1", ProductID: "p1", Email: "a@example.com"}
	f.stock.notifications["n2"] = shop.StockNotification{ID: "n2", ProductID: "p1", Email: "b@example.com", Notified: true}
	f.stock.notifications["n3"] = shop.StockNotification{ID: "n3", ProductID: "p2", Email: "c@example.com"}

	sent, err := f.svc.NotifyBackInStock(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"a@example.com"}, f.mailer.sent)
	assert.True(t, f.stock.notifications["n1"].Notified)
	assert.False(t, f.stock.notifications["n3"].Notified)

	// Everyone waiting has been handled, a second pass sends nothing.
	sent, err = f.svc.NotifyBackInStock(context.Background(), "p1")
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestNotifyBackInStockUnknownProduct(t *testing.T) {
	f := newEngagementFixture()
	_, err := f.svc.NotifyBackInStock(context.Background(), "ghost")
	assert.True(t, apperrors.IsNotFound(err))
}
