// internal/adapters/in/http/handlers/cart_handler.go
package handlers

import (
	"log"
	"net/http"
	"strings"

	usecase "ardulimp/internal/application/usecase"
)

// CartHandler serves the storefront cart endpoints:
//
//	GET    /api/cart                      (cart id via ?cartId= or X-Cart-Id)
//	DELETE /api/cart
//	POST   /api/cart/items                {"productId": "...", "qty": 1}
//	PUT    /api/cart/items/{productId}    {"delta": -1}
//	DELETE /api/cart/items/{productId}
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

// readCartID resolves the anonymous cart id the storefront generated.
func readCartID(r *http.Request) string {
	if v := strings.TrimSpace(r.URL.Query().Get("cartId")); v != "" {
		return v
	}
	return strings.TrimSpace(r.Header.Get("X-Cart-Id"))
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		log.Printf("[cart_handler] uc is nil")
		writeErr(w, http.StatusInternalServerError, "cart handler is not configured")
		return
	}

	cartID := readCartID(r)
	if cartID == "" {
		writeErr(w, http.StatusBadRequest, "cartId is required")
		return
	}

	segs, ok := segmentsAfter(r.URL.Path, "/api/cart")
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch {
	case len(segs) == 0:
		switch r.Method {
		case http.MethodGet:
			h.get(w, r, cartID)
		case http.MethodDelete:
			h.clear(w, r, cartID)
		default:
			methodNotAllowed(w)
		}
	case len(segs) == 1 && segs[0] == "items":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		h.addItem(w, r, cartID)
	case len(segs) == 2 && segs[0] == "items":
		switch r.Method {
		case http.MethodPut:
			h.updateQty(w, r, cartID, segs[1])
		case http.MethodDelete:
			h.removeItem(w, r, cartID, segs[1])
		default:
			methodNotAllowed(w)
		}
	default:
		http.NotFound(w, r)
	}
}

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request, cartID string) {
	c, err := h.uc.Get(r.Context(), cartID)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request, cartID string) {
	var body struct {
		ProductID string `json:"productId"`
		Qty       int    `json:"qty"`
	}
	if err := readJSON(w, r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if body.Qty == 0 {
		body.Qty = 1
	}
	c, err := h.uc.AddItem(r.Context(), cartID, body.ProductID, body.Qty)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) updateQty(w http.ResponseWriter, r *http.Request, cartID, productID string) {
	var body struct {
		Delta int `json:"delta"`
	}
	if err := readJSON(w, r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	c, err := h.uc.UpdateQty(r.Context(), cartID, productID, body.Delta)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request, cartID, productID string) {
	c, err := h.uc.RemoveItem(r.Context(), cartID, productID)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request, cartID string) {
	if err := h.uc.Clear(r.Context(), cartID); err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
