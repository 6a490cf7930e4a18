//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"sweetshop-backend/application/ports"
	"sweetshop-backend/application/services"
	"sweetshop-backend/infrastructure/config"
	"sweetshop-backend/pkg/auth"
	"sweetshop-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Cache       ports.Cache
	Metrics     *observability.Metrics
	Validator   *auth.JWTValidator
	RateLimiter *auth.IPRateLimiter
	UserLimiter *auth.UserRateLimiter

	CartSync   *services.CartSyncService
	Catalog    *services.CatalogService
	Orders     *services.OrderService
	Reviews    *services.ReviewService
	Wishlists  *services.WishlistService
	Promos     *services.PromoService
	Engagement *services.EngagementService
	Settings   *services.SettingsService
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideTableNames,
	ProvideMetrics,
	ProvideRemoteCartStore,
	ProvideLocalCartStore,
	ProvideProductRepository,
	ProvideCategoryRepository,
	ProvideOrderRepository,
	ProvideReviewRepository,
	ProvideWishlistRepository,
	ProvidePromoCodeRepository,
	ProvideNewsletterRepository,
	ProvideStockNotificationRepository,
	ProvideSettingsRepository,
	ProvideMailer,
	ProvideNotifier,
	ProvideEventPublisher,
	ProvideJWTValidator,
	ProvideRateLimiter,
	ProvideUserRateLimiter,
	ProvideInMemoryCache,
	ProvideCartSyncService,
	ProvideCatalogService,
	ProvideOrderService,
	ProvideReviewService,
	ProvideWishlistService,
	ProvidePromoService,
	ProvideEngagementService,
	ProvideSettingsService,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
