package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sweetshop-backend/application/services"
	"sweetshop-backend/domain/cart"
	"sweetshop-backend/domain/catalog"
	"sweetshop-backend/domain/order"
	"sweetshop-backend/domain/shop"
	"sweetshop-backend/infrastructure/config"
	"sweetshop-backend/infrastructure/di"
	"sweetshop-backend/interfaces/http/rest"
	"sweetshop-backend/pkg/auth"
	"sweetshop-backend/pkg/observability"
)

// In-memory fakes standing in for DynamoDB, SendGrid, Telegram and
// EventBridge. The HTTP surface, auth chain and services are the real
// thing.

type memCartStore struct{ carts map[string]cart.Snapshot }

func (m *memCartStore) Load(_ context.Context, userID string) (cart.Snapshot, error) {
	return m.carts[userID].Clone(), nil
}
func (m *memCartStore) Save(_ context.Context, userID string, items cart.Snapshot) error {
	m.carts[userID] = items.Clone()
	return nil
}
func (m *memCartStore) Delete(_ context.Context, userID string) error {
	delete(m.carts, userID)
	return nil
}

type memLocalStore struct{ items cart.Snapshot }

func (m *memLocalStore) Load() cart.Snapshot  { return m.items.Clone() }
func (m *memLocalStore) Save(s cart.Snapshot) { m.items = s.Clone() }

type memProducts struct{ items map[string]catalog.Product }

func (m *memProducts) Put(_ context.Context, p catalog.Product) error { m.items[p.ID] = p; return nil }
func (m *memProducts) Get(_ context.Context, id string) (*catalog.Product, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}
func (m *memProducts) Scan(_ context.Context) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, p)
	}
	return out, nil
}
func (m *memProducts) Update(_ context.Context, id string, patch map[string]interface{}) error {
	p := m.items[id]
	if v, ok := patch["price"]; ok {
		p.Price = v.(float64)
	}
	m.items[id] = p
	return nil
}
func (m *memProducts) Delete(_ context.Context, id string) error { delete(m.items, id); return nil }

type memCategories struct{ items map[string]catalog.Category }

func (m *memCategories) Put(_ context.Context, c catalog.Category) error {
	m.items[c.ID] = c
	return nil
}
func (m *memCategories) Get(_ context.Context, id string) (*catalog.Category, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}
func (m *memCategories) Scan(_ context.Context) ([]catalog.Category, error) {
	out := make([]catalog.Category, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, c)
	}
	return out, nil
}
func (m *memCategories) Delete(_ context.Context, id string) error { delete(m.items, id); return nil }

type memOrders struct{ items map[string]order.Order }

func (m *memOrders) Put(_ context.Context, o order.Order) error { m.items[o.ID] = o; return nil }
func (m *memOrders) Get(_ context.Context, id string) (*order.Order, error) {
	o, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}
func (m *memOrders) Scan(_ context.Context) ([]order.Order, error) {
	out := make([]order.Order, 0, len(m.items))
	for _, o := range m.items {
		out = append(out, o)
	}
	return out, nil
}
func (m *memOrders) Update(_ context.Context, id string, patch map[string]interface{}) error {
	o := m.items[id]
	if v, ok := patch["status"]; ok {
		o.Status = order.Status(v.(string))
	}
	m.items[id] = o
	return nil
}

type memReviews struct{ items map[string]shop.Review }

func (m *memReviews) Put(_ context.Context, r shop.Review) error { m.items[r.ID] = r; return nil }
func (m *memReviews) Scan(_ context.Context) ([]shop.Review, error) {
	out := make([]shop.Review, 0, len(m.items))
	for _, r := range m.items {
		out = append(out, r)
	}
	return out, nil
}
func (m *memReviews) Update(_ context.Context, id string, patch map[string]interface{}) error {
	r := m.items[id]
	if v, ok := patch["approved"]; ok {
		r.Approved = v.(bool)
	}
	m.items[id] = r
	return nil
}
func (m *memReviews) Delete(_ context.Context, id string) error { delete(m.items, id); return nil }

type memWishlists struct{ items map[string]shop.Wishlist }

func (m *memWishlists) Put(_ context.Context, w shop.Wishlist) error { m.items[w.ID] = w; return nil }
func (m *memWishlists) Get(_ context.Context, userID string) (*shop.Wishlist, error) {
	w, ok := m.items[userID]
	if !ok {
		return nil, nil
	}
	return &w, nil
}
func (m *memWishlists) Delete(_ context.Context, userID string) error {
	delete(m.items, userID)
	return nil
}

type memPromos struct{ items map[string]shop.PromoCode }

func (m *memPromos) Put(_ context.Context, p shop.PromoCode) error { m.items[p.Code] = p; return nil }
func (m *memPromos) Get(_ context.Context, code string) (*shop.PromoCode, error) {
	p, ok := m.items[code]
	if !ok {
		return nil, nil
	}
	return &p, nil
}
func (m *memPromos) Scan(_ context.Context) ([]shop.PromoCode, error) {
	out := make([]shop.PromoCode, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, p)
	}
	return out, nil
}
func (m *memPromos) Update(_ context.Context, code string, patch map[string]interface{}) error {
	p := m.items[code]
	if v, ok := patch["uses"]; ok {
		p.Uses = v.(int)
	}
	if v, ok := patch["active"]; ok {
		p.Active = v.(bool)
	}
	m.items[code] = p
	return nil
}
func (m *memPromos) IncrementUses(_ context.Context, code string) error {
	p := m.items[code]
	p.Uses++
	m.items[code] = p
	return nil
}
func (m *memPromos) Delete(_ context.Context, code string) error { delete(m.items, code); return nil }

type memNewsletter struct{ items map[string]shop.NewsletterSubscription }

func (m *memNewsletter) Put(_ context.Context, s shop.NewsletterSubscription) error {
	m.items[s.Email] = s
	return nil
}
func (m *memNewsletter) Get(_ context.Context, email string) (*shop.NewsletterSubscription, error) {
	s, ok := m.items[email]
	if !ok {
		return nil, nil
	}
	return &s, nil
}
func (m *memNewsletter) Scan(_ context.Context) ([]shop.NewsletterSubscription, error) {
	out := make([]shop.NewsletterSubscription, 0, len(m.items))
	for _, s := range m.items {
		out = append(out, s)
	}
	return out, nil
}
func (m *memNewsletter) Delete(_ context.Context, email string) error {
	delete(m.items, email)
	return nil
}

type memStock struct{ items map[string]shop.StockNotification }

func (m *memStock) Put(_ context.Context, n shop.StockNotification) error {
	m.items[n.ID] = n
	return nil
}
func (m *memStock) Scan(_ context.Context) ([]shop.StockNotification, error) {
	out := make([]shop.StockNotification, 0, len(m.items))
	for _, n := range m.items {
		out = append(out, n)
	}
	return out, nil
}
func (m *memStock) Update(_ context.Context, id string, patch map[string]interface{}) error {
	n := m.items[id]
	if v, ok := patch["notified"]; ok {
		n.Notified = v.(bool)
	}
	m.items[id] = n
	return nil
}
func (m *memStock) Delete(_ context.Context, id string) error { delete(m.items, id); return nil }

type memSettings struct{ items map[string]shop.SiteSetting }

func (m *memSettings) Put(_ context.Context, s shop.SiteSetting) error {
	m.items[s.Key] = s
	return nil
}
func (m *memSettings) Get(_ context.Context, key string) (*shop.SiteSetting, error) {
	s, ok := m.items[key]
	if !ok {
		return nil, nil
	}
	return &s, nil
}
func (m *memSettings) Scan(_ context.Context) ([]shop.SiteSetting, error) {
	out := make([]shop.SiteSetting, 0, len(m.items))
	for _, s := range m.items {
		out = append(out, s)
	}
	return out, nil
}

type memMailer struct{ sent []string }

func (m *memMailer) Send(_ context.Context, to, _, _ string) error {
	m.sent = append(m.sent, to)
	return nil
}

type memNotifier struct{ messages []string }

func (m *memNotifier) Notify(_ context.Context, msg string) error {
	m.messages = append(m.messages, msg)
	return nil
}

type memPublisher struct{ events []string }

func (m *memPublisher) Publish(_ context.Context, detailType string, _ interface{}) error {
	m.events = append(m.events, detailType)
	return nil
}

type testEnv struct {
	server    *httptest.Server
	validator *auth.JWTValidator
	remote    *memCartStore
	products  *memProducts
	orders    *memOrders
	mailer    *memMailer
	notifier  *memNotifier
	publisher *memPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zap.NewNop()
	metrics := observability.NewMetrics("test", nil, logger)
	cache := di.NewInMemoryCache()

	validator, err := auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: "integration-test-secret",
		Issuer:    "sweetshop-backend",
	})
	require.NoError(t, err)

	env := &testEnv{
		validator: validator,
		remote:    &memCartStore{carts: make(map[string]cart.Snapshot)},
		products:  &memProducts{items: make(map[string]catalog.Product)},
		orders:    &memOrders{items: make(map[string]order.Order)},
		mailer:    &memMailer{},
		notifier:  &memNotifier{},
		publisher: &memPublisher{},
	}

	local := &memLocalStore{}
	categories := &memCategories{items: make(map[string]catalog.Category)}
	reviews := &memReviews{items: make(map[string]shop.Review)}
	wishlists := &memWishlists{items: make(map[string]shop.Wishlist)}
	promos := &memPromos{items: make(map[string]shop.PromoCode)}
	newsletter := &memNewsletter{items: make(map[string]shop.NewsletterSubscription)}
	stock := &memStock{items: make(map[string]shop.StockNotification)}
	settings := &memSettings{items: make(map[string]shop.SiteSetting)}

	container := &di.Container{
		Config:      &config.Config{Environment: "test", EnableCORS: false},
		Logger:      logger,
		Cache:       cache,
		Metrics:     metrics,
		Validator:   validator,
		RateLimiter: auth.NewIPRateLimiter(10000),
		UserLimiter: auth.NewUserRateLimiter(10000),
		CartSync:    services.NewCartSyncService(env.remote, local, metrics, logger),
		Catalog:     services.NewCatalogService(env.products, categories, cache, logger),
		Orders:      services.NewOrderService(env.orders, promos, env.mailer, env.notifier, env.publisher, metrics, logger),
		Reviews:     services.NewReviewService(reviews, logger),
		Wishlists:   services.NewWishlistService(wishlists, logger),
		Promos:      services.NewPromoService(promos, logger),
		Engagement:  services.NewEngagementService(newsletter, stock, env.products, env.mailer, env.publisher, metrics, logger),
		Settings:    services.NewSettingsService(settings, cache, logger),
	}

	env.server = httptest.NewServer(rest.NewRouter(container).Setup())
	t.Cleanup(env.server.Close)
	return env
}

func (e *testEnv) token(t *testing.T, userID string, roles ...string) string {
	t.Helper()
	raw, err := e.validator.IssueToken(auth.Claims{UserID: userID, Roles: roles}, time.Hour)
	require.NoError(t, err)
	return raw
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.True(t, envelope.Success)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestCartMergeOnLoginFlow(t *testing.T) {
	env := newTestEnv(t)
	env.remote.carts["u1"] = cart.Snapshot{
		{ProductID: "p1", Name: "Dark Truffle", Price: 4.5, Quantity: 2},
	}
	token := env.token(t, "u1", "customer")

	body := map[string]interface{}{
		"items": cart.Snapshot{
			{ProductID: "p1", Name: "Old Name", Price: 4.0, Quantity: 1},
			{ProductID: "p2", Name: "Nougat Bar", Price: 2.0, Quantity: 3},
		},
	}
	resp := env.do(t, http.MethodPost, "/api/v1/cart/merge", token, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Items     cart.Snapshot `json:"items"`
		Persisted bool          `json:"persisted"`
	}
	decodeData(t, resp, &result)
	require.Len(t, result.Items, 2)
	assert.True(t, result.Persisted)
	assert.Equal(t, "Dark Truffle", result.Items[0].Name)
	assert.Equal(t, 3, result.Items[0].Quantity)
	assert.Equal(t, "p2", result.Items[1].ProductID)

	// The merged snapshot is what the remote store now holds.
	assert.Equal(t, result.Items, env.remote.carts["u1"])
}

func TestCartEndpointsRequireAuth(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/v1/cart", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGuestCheckoutPlacesOrderAndNotifies(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]interface{}{
		"customer": map[string]string{
			"name":    "Alex Doe",
			"email":   "alex@example.com",
			"address": "1 Candy Lane",
		},
		"items": cart.Snapshot{
			{ProductID: "p1", Name: "Dark Truffle", Price: 4.5, Quantity: 2},
		},
	}
	resp := env.do(t, http.MethodPost, "/api/v1/orders", "", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var placed order.Order
	decodeData(t, resp, &placed)
	assert.Equal(t, order.StatusPending, placed.Status)
	assert.InDelta(t, 9.0, placed.Total, 1e-9)

	assert.Equal(t, []string{"alex@example.com"}, env.mailer.sent)
	assert.Len(t, env.notifier.messages, 1)
	assert.Equal(t, []string{"order.placed"}, env.publisher.events)
}

func TestLoggedInCheckoutClearsCart(t *testing.T) {
	env := newTestEnv(t)
	env.remote.carts["u1"] = cart.Snapshot{{ProductID: "p1", Name: "Fudge", Price: 3, Quantity: 1}}
	token := env.token(t, "u1", "customer")

	body := map[string]interface{}{
		"customer": map[string]string{
			"name":    "Alex Doe",
			"email":   "alex@example.com",
			"address": "1 Candy Lane",
		},
		"items": cart.Snapshot{{ProductID: "p1", Name: "Fudge", Price: 3, Quantity: 1}},
	}
	resp := env.do(t, http.MethodPost, "/api/v1/orders", token, body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	_, remains := env.remote.carts["u1"]
	assert.False(t, remains)
}

func TestProductAdminRoutesEnforceRole(t *testing.T) {
	env := newTestEnv(t)
	product := map[string]interface{}{"name": "Marzipan Bear", "price": 6.5}

	resp := env.do(t, http.MethodPost, "/api/v1/products", env.token(t, "u1", "customer"), product)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/v1/products", env.token(t, "admin1", "admin"), product)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created catalog.Product
	decodeData(t, resp, &created)
	assert.NotEmpty(t, created.ID)

	// The new product is publicly listable.
	resp = env.do(t, http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []catalog.Product
	decodeData(t, resp, &listed)
	assert.Len(t, listed, 1)
}

func TestReviewModerationFlow(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, "admin1", "admin")

	resp := env.do(t, http.MethodPost, "/api/v1/products/p1/reviews", "", map[string]interface{}{
		"author": "Sam",
		"rating": 5,
		"text":   "Perfect pralines",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var submitted shop.Review
	decodeData(t, resp, &submitted)

	// Hidden until approved.
	resp = env.do(t, http.MethodGet, "/api/v1/products/p1/reviews", "", nil)
	var visible []shop.Review
	decodeData(t, resp, &visible)
	assert.Empty(t, visible)

	resp = env.do(t, http.MethodPost, "/api/v1/reviews/"+submitted.ID+"/approve", admin, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/v1/products/p1/reviews", "", nil)
	decodeData(t, resp, &visible)
	assert.Len(t, visible, 1)
}

func TestNewsletterSubscribe(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/v1/newsletter", "", map[string]string{"email": "Fan@Example.com"})
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/v1/newsletter", "", map[string]string{"email": "nope"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
