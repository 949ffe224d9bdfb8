// internal/adapters/in/http/router.go
package httpin

import (
	"log"
	"net/http"
)

// Deps is the full handler set, storefront plus admin.
type Deps struct {
	// public storefront
	Catalog  http.Handler
	Cart     http.Handler
	Checkout http.Handler

	// admin (wrapped with the Firebase guard by the caller)
	Orders     http.Handler
	Products   http.Handler
	Categories http.Handler
	Stats      http.Handler
}

// handleSafe registers pattern with h. A nil handler logs and falls back to
// NotFoundHandler so a partial boot still serves the rest.
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// Register registers all API routes onto mux.
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	// storefront
	handleSafe(mux, "/api/products", deps.Catalog, "Catalog")
	handleSafe(mux, "/api/products/", deps.Catalog, "Catalog")
	handleSafe(mux, "/api/categories", deps.Catalog, "Catalog(categories)")
	handleSafe(mux, "/api/cart", deps.Cart, "Cart")
	handleSafe(mux, "/api/cart/", deps.Cart, "Cart")
	handleSafe(mux, "/api/checkout", deps.Checkout, "Checkout")

	// admin
	handleSafe(mux, "/api/admin/orders", deps.Orders, "Orders")
	handleSafe(mux, "/api/admin/orders/", deps.Orders, "Orders")
	handleSafe(mux, "/api/admin/products", deps.Products, "Products")
	handleSafe(mux, "/api/admin/products/", deps.Products, "Products")
	handleSafe(mux, "/api/admin/categories", deps.Categories, "Categories")
	handleSafe(mux, "/api/admin/categories/", deps.Categories, "Categories")
	handleSafe(mux, "/api/admin/stats", deps.Stats, "Stats")
}
