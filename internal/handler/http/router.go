package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/middleware"
)

const serviceName = "storefront"

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	catalogService *service.CatalogService,
	deferred *service.DeferredCatalog,
	cartService *service.CartService,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(CORS)

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	catalogHandler := NewCatalogHandler(catalogService, deferred, logger)
	cartHandler := NewCartHandler(cartService, catalogService, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogHandler.ListProducts)
			r.Get("/top-rated", catalogHandler.TopRated)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", catalogHandler.GetProduct)
				r.Get("/sentiment", catalogHandler.GetSentiment)
				r.Get("/reviews", catalogHandler.ListReviews)
				r.Post("/reviews", catalogHandler.CreateReview)
				r.Get("/suggestions", catalogHandler.ListSuggestions)
				r.Post("/suggestions", catalogHandler.CreateSuggestion)
			})
		})

		r.Get("/categories", catalogHandler.ListCategories)
		r.Get("/categories/{id}", catalogHandler.GetCategory)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productId}", cartHandler.UpdateItemQuantity)
			r.Delete("/items/{productId}", cartHandler.RemoveItem)
		})
	})

	return r
}
