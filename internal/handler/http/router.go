package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Armmuh/naija-coffee-oasis/internal/service"
	"github.com/Armmuh/naija-coffee-oasis/pkg/health"
	"github.com/Armmuh/naija-coffee-oasis/pkg/middleware"
)

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	cartService *service.CartService,
	catalogService *service.CatalogService,
	checkoutService *service.CheckoutService,
	orderService *service.OrderService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	pprofCIDRs []string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(CORS)

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, pprofCIDRs, logger)

	cartHandler := NewCartHandler(cartService, catalogService, logger)
	productHandler := NewProductHandler(catalogService, logger)
	checkoutHandler := NewCheckoutHandler(checkoutService, logger)
	orderHandler := NewOrderHandler(orderService, logger)

	// Public catalog endpoints
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", productHandler.List)
		r.Get("/{productID}", productHandler.Get)
	})

	// Cart endpoints (per-user, gateway-authenticated)
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(UserIDFromHeader)

		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ClearCart)

		r.Post("/items", cartHandler.AddItem)
		r.Put("/items/{productID}", cartHandler.SetQuantity)
		r.Delete("/items/{productID}", cartHandler.RemoveItem)
	})

	// Checkout
	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(UserIDFromHeader)

		r.Post("/", checkoutHandler.PlaceOrder)
	})

	// Customer order endpoints
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(UserIDFromHeader)

		r.Get("/", orderHandler.ListMine)
		r.Get("/{orderID}", orderHandler.Get)
	})

	// Admin back-office endpoints
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(UserIDFromHeader)
		r.Use(AdminOnly)

		r.Post("/products", productHandler.Create)
		r.Put("/products/{productID}", productHandler.Update)
		r.Delete("/products/{productID}", productHandler.Delete)

		r.Get("/orders", orderHandler.ListAll)
		r.Patch("/orders/{orderID}/status", orderHandler.UpdateStatus)
	})

	return r
}
