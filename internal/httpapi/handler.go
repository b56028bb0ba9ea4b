// Package httpapi exposes the storefront over a JSON HTTP API: catalog
// reads, cart mutations, checkout, order views, and manager notifications.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olekhv/storefront/internal/domain/cart"
	"github.com/olekhv/storefront/internal/domain/notification"
	"github.com/olekhv/storefront/internal/domain/order"
	"github.com/olekhv/storefront/internal/domain/product"
)

// Handler holds the domain services behind the HTTP surface.
type Handler struct {
	products      product.Repository
	carts         *cart.Service
	orders        *order.Service
	notifications *notification.Service
	auth          *APIKeyAuth
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	products product.Repository,
	carts *cart.Service,
	orders *order.Service,
	notifications *notification.Service,
	auth *APIKeyAuth,
) *Handler {
	return &Handler{
		products:      products,
		carts:         carts,
		orders:        orders,
		notifications: notifications,
		auth:          auth,
	}
}

// Routes builds the chi router for the API. Catalog reads are public; cart,
// checkout, order, and notification routes require an API key.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.listProducts)
		r.Get("/products/{productID}", h.getProduct)

		r.Group(func(r chi.Router) {
			r.Use(h.auth.Middleware)

			r.Get("/cart", h.viewCart)
			r.Post("/cart/items", h.addToCart)
			r.Post("/cart/items/remove", h.removeFromCart)
			r.Post("/cart/items/quantity", h.setCartQuantity)
			r.Post("/cart/clear", h.clearCart)

			r.Get("/checkout", h.checkoutForm)
			r.Post("/checkout", h.submitCheckout)

			r.Get("/orders", h.listOrders)
			r.Get("/orders/{orderID}", h.getOrder)

			r.Get("/notifications", h.listNotifications)
			r.Post("/notifications/read", h.markNotificationRead)
		})
	})
	return r
}
