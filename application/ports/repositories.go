package ports

import (
	"context"

	"sweetshop-backend/domain/cart"
	"sweetshop-backend/domain/catalog"
	"sweetshop-backend/domain/order"
	"sweetshop-backend/domain/shop"
)

// RemoteCartStore persists one cart snapshot per authenticated user in the
// shared backing store. Callers never see which backend (DynamoDB or
// Firestore) sits behind it.
type RemoteCartStore interface {
	// Load fetches the user's snapshot. A missing record is a normal empty
	// result, never an error; only backend/network failures return one.
	Load(ctx context.Context, userID string) (cart.Snapshot, error)

	// Save fully replaces the user's record with the given snapshot and a
	// fresh updatedAt stamp. There is no partial update.
	Save(ctx context.Context, userID string, items cart.Snapshot) error

	// Delete removes the user's record, e.g. after checkout.
	Delete(ctx context.Context, userID string) error
}

// LocalCartStore mirrors the device-resident cart under a single fixed key.
type LocalCartStore interface {
	// Load returns the stored snapshot. An absent or undecodable value
	// yields an empty snapshot; corruption is recovered silently.
	Load() cart.Snapshot

	// Save overwrites the stored snapshot. Best effort: failures are
	// logged by the implementation, never returned.
	Save(items cart.Snapshot)
}

// ProductRepository persists catalog products.
type ProductRepository interface {
	Put(ctx context.Context, p catalog.Product) error
	Get(ctx context.Context, id string) (*catalog.Product, error)
	Scan(ctx context.Context) ([]catalog.Product, error)
	Update(ctx context.Context, id string, patch map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// CategoryRepository persists catalog categories.
type CategoryRepository interface {
	Put(ctx context.Context, c catalog.Category) error
	Get(ctx context.Context, id string) (*catalog.Category, error)
	Scan(ctx context.Context) ([]catalog.Category, error)
	Delete(ctx context.Context, id string) error
}

// OrderRepository persists placed orders.
type OrderRepository interface {
	Put(ctx context.Context, o order.Order) error
	Get(ctx context.Context, id string) (*order.Order, error)
	Scan(ctx context.Context) ([]order.Order, error)
	Update(ctx context.Context, id string, patch map[string]interface{}) error
}

// ReviewRepository persists product reviews.
type ReviewRepository interface {
	Put(ctx context.Context, r shop.Review) error
	Scan(ctx context.Context) ([]shop.Review, error)
	Update(ctx context.Context, id string, patch map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// WishlistRepository persists one wishlist record per user, overwritten
// wholesale like the remote cart record.
type WishlistRepository interface {
	Put(ctx context.Context, w shop.Wishlist) error
	Get(ctx context.Context, userID string) (*shop.Wishlist, error)
	Delete(ctx context.Context, userID string) error
}

// PromoCodeRepository persists discount codes, keyed by the code itself.
type PromoCodeRepository interface {
	Put(ctx context.Context, p shop.PromoCode) error
	Get(ctx context.Context, code string) (*shop.PromoCode, error)
	Scan(ctx context.Context) ([]shop.PromoCode, error)
	Update(ctx context.Context, code string, patch map[string]interface{}) error

	// IncrementUses bumps the code's use counter atomically in the store,
	// so concurrent checkouts across instances cannot lose counts.
	IncrementUses(ctx context.Context, code string) error

	Delete(ctx context.Context, code string) error
}

// NewsletterRepository persists newsletter subscriptions keyed by email.
type NewsletterRepository interface {
	Put(ctx context.Context, s shop.NewsletterSubscription) error
	Get(ctx context.Context, email string) (*shop.NewsletterSubscription, error)
	Scan(ctx context.Context) ([]shop.NewsletterSubscription, error)
	Delete(ctx context.Context, email string) error
}

// StockNotificationRepository persists back-in-stock requests.
type StockNotificationRepository interface {
	Put(ctx context.Context, n shop.StockNotification) error
	Scan(ctx context.Context) ([]shop.StockNotification, error)
	Update(ctx context.Context, id string, patch map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// SettingsRepository persists fixed-key site settings.
type SettingsRepository interface {
	Put(ctx context.Context, s shop.SiteSetting) error
	Get(ctx context.Context, key string) (*shop.SiteSetting, error)
	Scan(ctx context.Context) ([]shop.SiteSetting, error)
}
