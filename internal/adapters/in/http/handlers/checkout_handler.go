// internal/adapters/in/http/handlers/checkout_handler.go
package handlers

import (
	"log"
	"net/http"
	"time"

	usecase "ardulimp/internal/application/usecase"
	orderdom "ardulimp/internal/domain/order"
)

// CheckoutHandler serves POST /api/checkout: cart -> Pendente order plus the
// WhatsApp handoff link the storefront opens.
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

type checkoutRequest struct {
	CartID               string `json:"cartId"`
	CustomerName         string `json:"customerName"`
	CustomerNeighborhood string `json:"customerNeighborhood"`
	DeliveryType         string `json:"deliveryType"`
	Observations         string `json:"observations"`
}

type checkoutResponse struct {
	Order        *orderdom.Order `json:"order"`
	WhatsAppLink string          `json:"whatsappLink"`
}

func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "checkout handler is not configured")
		return
	}

	start := time.Now()

	var body checkoutRequest
	if err := readJSON(w, r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	cartID := body.CartID
	if cartID == "" {
		cartID = readCartID(r)
	}

	res, err := h.uc.CreateOrder(r.Context(), cartID, usecase.CheckoutInput{
		CustomerName:         body.CustomerName,
		CustomerNeighborhood: body.CustomerNeighborhood,
		DeliveryType:         body.DeliveryType,
		Observations:         body.Observations,
	})
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}

	log.Printf("[checkout_handler] order=%s total=%d elapsed=%s", res.Order.ID, res.Order.TotalAmount, time.Since(start))
	writeJSON(w, http.StatusCreated, checkoutResponse{Order: res.Order, WhatsAppLink: res.WhatsAppLink})
}
