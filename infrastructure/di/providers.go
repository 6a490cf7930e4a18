package di

import (
	"context"
	"os"
	"path/filepath"

	gfirestore "cloud.google.com/go/firestore"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"sweetshop-backend/application/ports"
	"sweetshop-backend/application/services"
	"sweetshop-backend/infrastructure/config"
	"sweetshop-backend/infrastructure/messaging/eventbridge"
	"sweetshop-backend/infrastructure/notification"
	"sweetshop-backend/infrastructure/persistence/dynamodb"
	"sweetshop-backend/infrastructure/persistence/firestore"
	"sweetshop-backend/infrastructure/persistence/localstore"
	"sweetshop-backend/pkg/auth"
	"sweetshop-backend/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideTableNames derives the per-stage table names from configuration.
func ProvideTableNames(cfg *config.Config) dynamodb.TableNames {
	return dynamodb.DefaultTableNames(cfg.TablePrefix)
}

// ProvideMetrics creates the metrics publisher. Metrics are off unless
// explicitly enabled; a nil CloudWatch client makes every call a no-op.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	if !cfg.EnableMetrics {
		return observability.NewMetrics(cfg.MetricsNamespace, nil, logger)
	}
	return observability.NewMetrics(cfg.MetricsNamespace, client, logger)
}

// ProvideRemoteCartStore selects the cart backend. DynamoDB is the
// default; Firestore is kept at parity for deployments on GCP.
func ProvideRemoteCartStore(
	ctx context.Context,
	cfg *config.Config,
	client *awsdynamodb.Client,
	tables dynamodb.TableNames,
	logger *zap.Logger,
) (ports.RemoteCartStore, error) {
	if cfg.CartBackend == config.CartBackendFirestore {
		fsClient, err := gfirestore.NewClient(ctx, cfg.FirestoreProjectID)
		if err != nil {
			return nil, err
		}
		return firestore.NewCartRepository(fsClient, logger), nil
	}
	return dynamodb.NewCartRepository(client, tables.Carts, logger), nil
}

// ProvideLocalCartStore creates the device-side cart mirror.
func ProvideLocalCartStore(cfg *config.Config, logger *zap.Logger) ports.LocalCartStore {
	dir := cfg.LocalCartDir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "sweetshop")
	}
	return localstore.NewCartStore(dir, logger)
}

// ProvideProductRepository creates the product repository
func ProvideProductRepository(client *awsdynamodb.Client, tables dynamodb.TableNames, logger *zap.Logger) ports.ProductRepository {
	return dynamodb.NewProductRepository(client, tables.Products, logger)
}

// ProvideCategoryRepository creates the category repository
func ProvideCategoryRepository(client *awsdynamodb.Client, tables dynamodb.TableNames, logger *zap.Logger) ports.CategoryRepository {
	return dynamodb.NewCategoryRepository(client, tables.Categories, logger)
}

// ProvideOrderRepository creates the order repository
func ProvideOrderRepository(client *awsdynamodb.Client, tables dynamodb.TableNames, logger *zap.Logger) ports.OrderRepository {
	return dynamodb.NewOrderRepository(client, tables.Orders, logger)
}

// ProvideReviewRepository creates the review repository
func ProvideReviewRepository(client *awsdynamodb.Client, tables dynamodb.TableNames, logger *zap.Logger) ports.ReviewRepository {
	return dynamodb.NewReviewRepository(client, tables.Reviews, logger)
}

// ProvideWishlistRepository creates the wishlist repository
func ProvideWishlistRepository(client *awsdynamodb.Client, tables dynamodb.TableNames, logger *zap.Logger) ports.WishlistRepository {
	return dynamodb.NewWishlistRepository(client, tables.Wishlists, logger)
}

// ProvidePromoCodeRepository creates the promo code repository
func ProvidePromoCodeRepository(client *awsdynamodb.Client, tables dynamodb.TableNames, logger *zap.Logger) ports.PromoCodeRepository {
	return dynamodb.NewPromoCodeRepository(client, tables.PromoCodes, logger)
}

// ProvideNewsletterRepository creates the newsletter repository
func ProvideNewsletterRepository(client *awsdynamodb.Client, tables dynamodb.TableNames, logger *zap.Logger) ports.NewsletterRepository {
	return dynamodb.NewNewsletterRepository(client, tables.Newsletter, logger)
}

// ProvideStockNotificationRepository creates the stock notification repository
func ProvideStockNotificationRepository(client *awsdynamodb.Client, tables dynamodb.TableNames, logger *zap.Logger) ports.StockNotificationRepository {
	return dynamodb.NewStockNotificationRepository(client, tables.StockNotifications, logger)
}

// ProvideSettingsRepository creates the site settings repository
func ProvideSettingsRepository(client *awsdynamodb.Client, tables dynamodb.TableNames, logger *zap.Logger) ports.SettingsRepository {
	return dynamodb.NewSettingsRepository(client, tables.Settings, logger)
}

// ProvideMailer creates the transactional mailer. Without an API key,
// outgoing mail is logged and dropped so development works offline.
func ProvideMailer(cfg *config.Config, logger *zap.Logger) ports.Mailer {
	if cfg.SendGridAPIKey == "" {
		return &logMailer{logger: logger}
	}
	return notification.NewSendGridMailer(cfg.SendGridAPIKey, cfg.SenderName, cfg.SenderEmail, logger)
}

// ProvideNotifier creates the staff notifier. Without a bot token the
// notifier logs and drops messages.
func ProvideNotifier(cfg *config.Config, logger *zap.Logger) ports.Notifier {
	if cfg.TelegramBotToken == "" || cfg.TelegramChatID == "" {
		return &logNotifier{logger: logger}
	}
	return notification.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID, logger)
}

// ProvideEventPublisher creates the event bus publisher.
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideJWTValidator creates the token validator. In development an
// unset secret yields a nil validator and auth middleware lets requests
// through anonymously.
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	if cfg.JWTSecret == "" && cfg.IsDevelopment() {
		return nil, nil
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
		Audience:  cfg.JWTAudience,
	})
}

// ProvideRateLimiter creates the per-IP rate limiter.
func ProvideRateLimiter(cfg *config.Config) *auth.IPRateLimiter {
	return auth.NewIPRateLimiter(cfg.RateLimitPerMinute)
}

// ProvideUserRateLimiter creates the per-user rate limiter for account routes.
func ProvideUserRateLimiter(cfg *config.Config) *auth.UserRateLimiter {
	return auth.NewUserRateLimiter(cfg.RateLimitPerMinute)
}

// ProvideInMemoryCache creates a simple in-memory cache
// In production, this would be Redis or similar
func ProvideInMemoryCache() ports.Cache {
	return NewInMemoryCache()
}

// ProvideCartSyncService creates the cart sync service
func ProvideCartSyncService(
	remote ports.RemoteCartStore,
	local ports.LocalCartStore,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *services.CartSyncService {
	return services.NewCartSyncService(remote, local, metrics, logger)
}

// ProvideCatalogService creates the catalog service
func ProvideCatalogService(
	products ports.ProductRepository,
	categories ports.CategoryRepository,
	cache ports.Cache,
	logger *zap.Logger,
) *services.CatalogService {
	return services.NewCatalogService(products, categories, cache, logger)
}

// ProvideOrderService creates the order service
func ProvideOrderService(
	orders ports.OrderRepository,
	promos ports.PromoCodeRepository,
	mailer ports.Mailer,
	notifier ports.Notifier,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *services.OrderService {
	return services.NewOrderService(orders, promos, mailer, notifier, publisher, metrics, logger)
}

// ProvideReviewService creates the review service
func ProvideReviewService(reviews ports.ReviewRepository, logger *zap.Logger) *services.ReviewService {
	return services.NewReviewService(reviews, logger)
}

// ProvideWishlistService creates the wishlist service
func ProvideWishlistService(wishlists ports.WishlistRepository, logger *zap.Logger) *services.WishlistService {
	return services.NewWishlistService(wishlists, logger)
}

// ProvidePromoService creates the promo admin service
func ProvidePromoService(promos ports.PromoCodeRepository, logger *zap.Logger) *services.PromoService {
	return services.NewPromoService(promos, logger)
}

// ProvideEngagementService creates the engagement service
func ProvideEngagementService(
	newsletter ports.NewsletterRepository,
	stock ports.StockNotificationRepository,
	products ports.ProductRepository,
	mailer ports.Mailer,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *services.EngagementService {
	return services.NewEngagementService(newsletter, stock, products, mailer, publisher, metrics, logger)
}

// ProvideSettingsService creates the settings service
func ProvideSettingsService(settings ports.SettingsRepository, cache ports.Cache, logger *zap.Logger) *services.SettingsService {
	return services.NewSettingsService(settings, cache, logger)
}

// logMailer drops outgoing mail, keeping a log trail. Used when SendGrid
// is not configured.
type logMailer struct {
	logger *zap.Logger
}

func (m *logMailer) Send(_ context.Context, to, subject, _ string) error {
	m.logger.Info("mail suppressed, no mailer configured",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}

// logNotifier drops staff notifications when Telegram is not configured.
type logNotifier struct {
	logger *zap.Logger
}

func (n *logNotifier) Notify(_ context.Context, message string) error {
	n.logger.Info("staff notification suppressed, no notifier configured",
		zap.String("message", message),
	)
	return nil
}
