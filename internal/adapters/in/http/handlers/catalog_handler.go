// internal/adapters/in/http/handlers/catalog_handler.go
package handlers

import (
	"net/http"
	"strings"

	usecase "ardulimp/internal/application/usecase"
)

// CatalogHandler serves the public storefront catalog:
//
//	GET /api/products            (active products, ?category=&q=)
//	GET /api/products/{id}
//	GET /api/categories
type CatalogHandler struct {
	products   *usecase.ProductUsecase
	categories *usecase.CategoryUsecase
}

func NewCatalogHandler(products *usecase.ProductUsecase, categories *usecase.CategoryUsecase) *CatalogHandler {
	return &CatalogHandler{products: products, categories: categories}
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	if path == "/api/categories" {
		h.listCategories(w, r)
		return
	}

	segs, ok := segmentsAfter(path, "/api/products")
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch len(segs) {
	case 0:
		h.listProducts(w, r)
	case 1:
		h.getProduct(w, r, segs[0])
	default:
		http.NotFound(w, r)
	}
}

func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.products.ListCatalog(r.Context(), q.Get("category"), q.Get("q"))
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	items, err := h.categories.List(r.Context())
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
