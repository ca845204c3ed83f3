package routes

import (
	"net/http"

	"github.com/azorix/solarstore/internal/handler"
	"github.com/azorix/solarstore/internal/router"
)

// Deps contains the handlers for the storefront JSON API.
type Deps struct {
	CartHandler     *handler.CartHandler
	CatalogHandler  *handler.CatalogHandler
	CheckoutHandler *handler.CheckoutHandler
	PaymentsHandler *handler.PaymentsHandler

	// MetricsHandler serves the Prometheus scrape endpoint.
	MetricsHandler http.Handler
}

// Register registers all API routes.
func Register(r *router.Router, deps Deps) {
	// Catalog
	r.Get("/api/products", deps.CatalogHandler.ListProducts)
	r.Get("/api/products/{id}", deps.CatalogHandler.GetProduct)
	r.Get("/api/offers", deps.CatalogHandler.ListOffers)
	r.Get("/api/offers/{id}", deps.CatalogHandler.GetOffer)

	// Cart
	r.Get("/api/cart", deps.CartHandler.View)
	r.Post("/api/cart/items", deps.CartHandler.AddItem)
	r.Put("/api/cart/items/{id}", deps.CartHandler.UpdateItem)
	r.Delete("/api/cart/items/{id}", deps.CartHandler.RemoveItem)
	r.Put("/api/cart/items/{id}/offer", deps.CartHandler.ApplyOffer)
	r.Delete("/api/cart", deps.CartHandler.Clear)

	// Checkout
	r.Get("/api/checkout/summary", deps.CheckoutHandler.Summary)
	r.Post("/api/checkout/orders", deps.CheckoutHandler.PlaceOrder)
	r.Get("/api/orders/{id}", deps.CheckoutHandler.GetOrder)

	// Payments
	r.Get("/api/payments/config", deps.PaymentsHandler.Config)

	// Operations
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	if deps.MetricsHandler != nil {
		r.Handle(http.MethodGet, "/metrics", deps.MetricsHandler)
	}
}
