package dynamodb

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"sweetshop-backend/application/ports"
	"sweetshop-backend/domain/catalog"
	"sweetshop-backend/domain/order"
	"sweetshop-backend/domain/shop"
)

// TableNames lists the logical tables of the storefront. A prefix from
// configuration is prepended to each, so multiple stages can share an
// account.
type TableNames struct {
	Carts              string
	Products           string
	Categories         string
	Orders             string
	Reviews            string
	Wishlists          string
	Newsletter         string
	PromoCodes         string
	StockNotifications string
	Settings           string
}

// DefaultTableNames returns the table set with the given prefix applied.
// A "_" separator is added when the prefix does not already end in one.
func DefaultTableNames(prefix string) TableNames {
	if prefix != "" && !strings.HasSuffix(prefix, "_") && !strings.HasSuffix(prefix, "-") {
		prefix += "_"
	}
	return TableNames{
		Carts:              prefix + "carts",
		Products:           prefix + "products",
		Categories:         prefix + "categories",
		Orders:             prefix + "orders",
		Reviews:            prefix + "reviews",
		Wishlists:          prefix + "wishlists",
		Newsletter:         prefix + "newsletterSubscriptions",
		PromoCodes:         prefix + "promocodes",
		StockNotifications: prefix + "stockNotifications",
		Settings:           prefix + "site_settings",
	}
}

// ProductRepository persists products.
type ProductRepository struct {
	store *TableStore
}

// NewProductRepository creates a product repository.
func NewProductRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.ProductRepository {
	return &ProductRepository{store: NewTableStore(client, tableName, "id", logger)}
}

func (r *ProductRepository) Put(ctx context.Context, p catalog.Product) error {
	return r.store.Put(ctx, p)
}

func (r *ProductRepository) Get(ctx context.Context, id string) (*catalog.Product, error) {
	var p catalog.Product
	found, err := r.store.Get(ctx, id, &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Scan(ctx context.Context) ([]catalog.Product, error) {
	var out []catalog.Product
	if err := r.store.Scan(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	return r.store.Update(ctx, id, patch)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}

// CategoryRepository persists categories.
type CategoryRepository struct {
	store *TableStore
}

// NewCategoryRepository creates a category repository.
func NewCategoryRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.CategoryRepository {
	return &CategoryRepository{store: NewTableStore(client, tableName, "id", logger)}
}

func (r *CategoryRepository) Put(ctx context.Context, c catalog.Category) error {
	return r.store.Put(ctx, c)
}

func (r *CategoryRepository) Get(ctx context.Context, id string) (*catalog.Category, error) {
	var c catalog.Category
	found, err := r.store.Get(ctx, id, &c)
	if err != nil || !found {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) Scan(ctx context.Context) ([]catalog.Category, error) {
	var out []catalog.Category
	if err := r.store.Scan(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}

// OrderRepository persists orders.
type OrderRepository struct {
	store *TableStore
}

// NewOrderRepository creates an order repository.
func NewOrderRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.OrderRepository {
	return &OrderRepository{store: NewTableStore(client, tableName, "id", logger)}
}

func (r *OrderRepository) Put(ctx context.Context, o order.Order) error {
	return r.store.Put(ctx, o)
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	var o order.Order
	found, err := r.store.Get(ctx, id, &o)
	if err != nil || !found {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) Scan(ctx context.Context) ([]order.Order, error) {
	var out []order.Order
	if err := r.store.Scan(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *OrderRepository) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	return r.store.Update(ctx, id, patch)
}

// ReviewRepository persists reviews.
type ReviewRepository struct {
	store *TableStore
}

// NewReviewRepository creates a review repository.
func NewReviewRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.ReviewRepository {
	return &ReviewRepository{store: NewTableStore(client, tableName, "id", logger)}
}

func (r *ReviewRepository) Put(ctx context.Context, review shop.Review) error {
	return r.store.Put(ctx, review)
}

func (r *ReviewRepository) Scan(ctx context.Context) ([]shop.Review, error) {
	var out []shop.Review
	if err := r.store.Scan(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReviewRepository) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	return r.store.Update(ctx, id, patch)
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}

// WishlistRepository persists one wishlist record per user.
type WishlistRepository struct {
	store *TableStore
}

// NewWishlistRepository creates a wishlist repository.
func NewWishlistRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.WishlistRepository {
	return &WishlistRepository{store: NewTableStore(client, tableName, "id", logger)}
}

func (r *WishlistRepository) Put(ctx context.Context, w shop.Wishlist) error {
	return r.store.Put(ctx, w)
}

func (r *WishlistRepository) Get(ctx context.Context, userID string) (*shop.Wishlist, error) {
	var w shop.Wishlist
	found, err := r.store.Get(ctx, userID, &w)
	if err != nil || !found {
		return nil, err
	}
	return &w, nil
}

func (r *WishlistRepository) Delete(ctx context.Context, userID string) error {
	return r.store.Delete(ctx, userID)
}

// PromoCodeRepository persists promo codes keyed by the code itself.
type PromoCodeRepository struct {
	store *TableStore
}

// NewPromoCodeRepository creates a promo code repository.
func NewPromoCodeRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.PromoCodeRepository {
	return &PromoCodeRepository{store: NewTableStore(client, tableName, "code", logger)}
}

func (r *PromoCodeRepository) Put(ctx context.Context, p shop.PromoCode) error {
	return r.store.Put(ctx, p)
}

func (r *PromoCodeRepository) Get(ctx context.Context, code string) (*shop.PromoCode, error) {
	var p shop.PromoCode
	found, err := r.store.Get(ctx, code, &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (r *PromoCodeRepository) Scan(ctx context.Context) ([]shop.PromoCode, error) {
	var out []shop.PromoCode
	if err := r.store.Scan(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PromoCodeRepository) Update(ctx context.Context, code string, patch map[string]interface{}) error {
	return r.store.Update(ctx, code, patch)
}

func (r *PromoCodeRepository) IncrementUses(ctx context.Context, code string) error {
	return r.store.Add(ctx, code, "uses", 1)
}

func (r *PromoCodeRepository) Delete(ctx context.Context, code string) error {
	return r.store.Delete(ctx, code)
}

// NewsletterRepository persists newsletter subscriptions keyed by email.
type NewsletterRepository struct {
	store *TableStore
}

// NewNewsletterRepository creates a newsletter repository.
func NewNewsletterRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.NewsletterRepository {
	return &NewsletterRepository{store: NewTableStore(client, tableName, "email", logger)}
}

func (r *NewsletterRepository) Put(ctx context.Context, s shop.NewsletterSubscription) error {
	return r.store.Put(ctx, s)
}

func (r *NewsletterRepository) Get(ctx context.Context, email string) (*shop.NewsletterSubscription, error) {
	var s shop.NewsletterSubscription
	found, err := r.store.Get(ctx, email, &s)
	if err != nil || !found {
		return nil, err
	}
	return &s, nil
}

func (r *NewsletterRepository) Scan(ctx context.Context) ([]shop.NewsletterSubscription, error) {
	var out []shop.NewsletterSubscription
	if err := r.store.Scan(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *NewsletterRepository) Delete(ctx context.Context, email string) error {
	return r.store.Delete(ctx, email)
}

// StockNotificationRepository persists back-in-stock requests.
type StockNotificationRepository struct {
	store *TableStore
}

// NewStockNotificationRepository creates a stock notification repository.
func NewStockNotificationRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.StockNotificationRepository {
	return &StockNotificationRepository{store: NewTableStore(client, tableName, "id", logger)}
}

func (r *StockNotificationRepository) Put(ctx context.Context, n shop.StockNotification) error {
	return r.store.Put(ctx, n)
}

func (r *StockNotificationRepository) Scan(ctx context.Context) ([]shop.StockNotification, error) {
	var out []shop.StockNotification
	if err := r.store.Scan(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StockNotificationRepository) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	return r.store.Update(ctx, id, patch)
}

func (r *StockNotificationRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}

// SettingsRepository persists fixed-key site settings.
type SettingsRepository struct {
	store *TableStore
}

// NewSettingsRepository creates a settings repository.
func NewSettingsRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.SettingsRepository {
	return &SettingsRepository{store: NewTableStore(client, tableName, "key", logger)}
}

func (r *SettingsRepository) Put(ctx context.Context, s shop.SiteSetting) error {
	return r.store.Put(ctx, s)
}

func (r *SettingsRepository) Get(ctx context.Context, key string) (*shop.SiteSetting, error) {
	var s shop.SiteSetting
	found, err := r.store.Get(ctx, key, &s)
	if err != nil || !found {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepository) Scan(ctx context.Context) ([]shop.SiteSetting, error) {
	var out []shop.SiteSetting
	if err := r.store.Scan(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
