package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"sweetshop-backend/infrastructure/di"
	"sweetshop-backend/interfaces/http/rest/handlers"
	"sweetshop-backend/interfaces/http/rest/middleware"
)

// Router creates and configures the HTTP router
type Router struct {
	container *di.Container
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container) *Router {
	return &Router{
		container: container,
		logger:    container.Logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	c := rt.container
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if c.Config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.sweetshop.example"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	authn := middleware.NewAuthenticator(c.Validator, c.RateLimiter, c.UserLimiter, rt.logger)

	cartHandler := handlers.NewCartHandler(c.CartSync, rt.logger)
	catalogHandler := handlers.NewCatalogHandler(c.Catalog, rt.logger)
	orderHandler := handlers.NewOrderHandler(c.Orders, c.CartSync, rt.logger)
	reviewHandler := handlers.NewReviewHandler(c.Reviews, rt.logger)
	wishlistHandler := handlers.NewWishlistHandler(c.Wishlists, rt.logger)
	promoHandler := handlers.NewPromoHandler(c.Promos, rt.logger)
	engagementHandler := handlers.NewEngagementHandler(c.Engagement, rt.logger)
	settingsHandler := handlers.NewSettingsHandler(c.Settings, rt.logger)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(authn.RateLimit)
		r.Use(authn.ExtractUser)

		// Public storefront reads
		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogHandler.ListProducts)
			r.Get("/{productID}", catalogHandler.GetProduct)
			r.Get("/{productID}/reviews", reviewHandler.ListForProduct)
			r.Post("/{productID}/reviews", reviewHandler.Submit)
			r.Post("/{productID}/stock-alerts", engagementHandler.RequestStockAlert)
		})
		r.Get("/categories", catalogHandler.ListCategories)
		r.Get("/settings", settingsHandler.List)
		r.Get("/settings/{key}", settingsHandler.Get)

		// Checkout works for guests and logged-in customers alike
		r.Post("/orders", orderHandler.PlaceOrder)
		r.Post("/promocodes/check", orderHandler.CheckPromoCode)

		// Newsletter
		r.Post("/newsletter", engagementHandler.Subscribe)
		r.Delete("/newsletter", engagementHandler.Unsubscribe)

		// Account-scoped routes
		r.Group(func(r chi.Router) {
			r.Use(authn.RequireAuth)
			r.Use(authn.RateLimitUser)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Put("/", cartHandler.SaveCart)
				r.Post("/merge", cartHandler.MergeCart)
				r.Delete("/", cartHandler.ClearCart)
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", wishlistHandler.Get)
				r.Put("/", wishlistHandler.Save)
				r.Delete("/", wishlistHandler.Clear)
			})

			r.Get("/orders", orderHandler.ListOrders)
			r.Get("/orders/{orderID}", orderHandler.GetOrder)
		})

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(authn.RequireAuth)
			r.Use(authn.RequireRole("admin"))

			r.Post("/products", catalogHandler.CreateProduct)
			r.Patch("/products/{productID}", catalogHandler.UpdateProduct)
			r.Delete("/products/{productID}", catalogHandler.DeleteProduct)
			r.Post("/products/{productID}/stock-alerts/send", engagementHandler.TriggerStockAlerts)

			r.Post("/categories", catalogHandler.CreateCategory)
			r.Delete("/categories/{categoryID}", catalogHandler.DeleteCategory)

			r.Patch("/orders/{orderID}/status", orderHandler.UpdateStatus)

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/pending", reviewHandler.ListPending)
				r.Post("/{reviewID}/approve", reviewHandler.Approve)
				r.Delete("/{reviewID}", reviewHandler.Delete)
			})

			r.Route("/promocodes", func(r chi.Router) {
				r.Get("/", promoHandler.List)
				r.Post("/", promoHandler.Create)
				r.Post("/{code}/deactivate", promoHandler.Deactivate)
				r.Delete("/{code}", promoHandler.Delete)
			})

			r.Get("/newsletter/subscribers", engagementHandler.ListSubscribers)
			r.Put("/settings/{key}", settingsHandler.Set)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
