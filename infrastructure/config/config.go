package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Cart backend selection.
const (
	CartBackendDynamoDB  = "dynamodb"
	CartBackendFirestore = "firestore"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion    string
	TablePrefix  string
	EventBusName string

	// Cart store backend: "dynamodb" (default) or "firestore"
	CartBackend        string
	FirestoreProjectID string

	// Local cart mirror
	LocalCartDir string

	// Lambda configuration
	IsLambda bool

	// Integrations
	SendGridAPIKey   string
	SenderEmail      string
	SenderName       string
	TelegramBotToken string
	TelegramChatID   string

	// Logging
	LogLevel string

	// Authentication
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	// Feature flags
	EnableMetrics    bool
	EnableCORS       bool
	MetricsNamespace string

	// Rate limiting
	RateLimitPerMinute int
}

// LoadConfig loads configuration from the environment. A .env file in the
// working directory is read first when present, which is how local
// development runs; deployed environments set real variables.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "eu-central-1"),
		TablePrefix:   getEnv("TABLE_PREFIX", "sweetshop"),
		EventBusName:  getEnv("EVENT_BUS_NAME", "sweetshop-events"),

		CartBackend:        getEnv("CART_BACKEND", CartBackendDynamoDB),
		FirestoreProjectID: getEnv("FIRESTORE_PROJECT_ID", ""),
		LocalCartDir:       getEnv("LOCAL_CART_DIR", ""),

		IsLambda: os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "",

		SendGridAPIKey:   getEnv("SENDGRID_API_KEY", ""),
		SenderEmail:      getEnv("SENDER_EMAIL", "orders@sweetshop.example"),
		SenderName:       getEnv("SENDER_NAME", "Sweet Shop"),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),

		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTIssuer:   getEnv("JWT_ISSUER", "sweetshop-backend"),
		JWTAudience: getEnv("JWT_AUDIENCE", "sweetshop-storefront"),

		LogLevel:         getEnv("LOG_LEVEL", "info"),
		EnableMetrics:    getEnvBool("ENABLE_METRICS", false),
		EnableCORS:       getEnvBool("ENABLE_CORS", true),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "SweetShop/Storefront"),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.CartBackend != CartBackendDynamoDB && c.CartBackend != CartBackendFirestore {
		return fmt.Errorf("CART_BACKEND must be %q or %q, got %q",
			CartBackendDynamoDB, CartBackendFirestore, c.CartBackend)
	}
	if c.CartBackend == CartBackendFirestore && c.FirestoreProjectID == "" {
		return fmt.Errorf("FIRESTORE_PROJECT_ID is required when CART_BACKEND=firestore")
	}

	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.EventBusName == "" {
			return fmt.Errorf("EVENT_BUS_NAME is required")
		}
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
