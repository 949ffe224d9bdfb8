// internal/adapters/in/http/handlers/order_handler.go
package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	usecase "ardulimp/internal/application/usecase"
	orderdom "ardulimp/internal/domain/order"
)

// OrderPDFRenderer renders an order as a downloadable PDF.
type OrderPDFRenderer interface {
	Render(o *orderdom.Order) ([]byte, error)
}

// OrderHandler serves the admin order endpoints:
//
//	GET    /api/admin/orders              (?status=&q=)
//	GET    /api/admin/orders/{id}
//	PATCH  /api/admin/orders/{id}/status  {"status": "Aprovado"}
//	PUT    /api/admin/orders/{id}/items   {"items": [...]}
//	DELETE /api/admin/orders/{id}
//	GET    /api/admin/orders/{id}/pdf
type OrderHandler struct {
	uc  *usecase.OrderUsecase
	pdf OrderPDFRenderer
}

func NewOrderHandler(uc *usecase.OrderUsecase, pdf OrderPDFRenderer) *OrderHandler {
	return &OrderHandler{uc: uc, pdf: pdf}
}

func (h *OrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "order handler is not configured")
		return
	}

	segs, ok := segmentsAfter(r.URL.Path, "/api/admin/orders")
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch {
	case len(segs) == 0:
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.list(w, r)
	case len(segs) == 1:
		switch r.Method {
		case http.MethodGet:
			h.get(w, r, segs[0])
		case http.MethodDelete:
			h.delete(w, r, segs[0])
		default:
			methodNotAllowed(w)
		}
	case len(segs) == 2 && segs[1] == "status":
		if r.Method != http.MethodPatch && r.Method != http.MethodPut {
			methodNotAllowed(w)
			return
		}
		h.setStatus(w, r, segs[0])
	case len(segs) == 2 && segs[1] == "items":
		if r.Method != http.MethodPut {
			methodNotAllowed(w)
			return
		}
		h.updateItems(w, r, segs[0])
	case len(segs) == 2 && segs[1] == "pdf":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.renderPDF(w, r, segs[0])
	default:
		http.NotFound(w, r)
	}
}

func (h *OrderHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.uc.List(r.Context(), q.Get("status"), q.Get("q"))
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *OrderHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	o, err := h.uc.Get(r.Context(), id)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) setStatus(w http.ResponseWriter, r *http.Request, id string) {
	var body struct {
		Status string `json:"status"`
	}
	if err := readJSON(w, r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	start := time.Now()
	o, err := h.uc.SetStatus(r.Context(), id, body.Status)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	log.Printf("[order_handler] status order=%s -> %s elapsed=%s", id, o.Status, time.Since(start))
	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) updateItems(w http.ResponseWriter, r *http.Request, id string) {
	var body struct {
		Items []orderdom.Item `json:"items"`
	}
	if err := readJSON(w, r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	o, err := h.uc.UpdateItems(r.Context(), id, body.Items)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.uc.Delete(r.Context(), id); err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *OrderHandler) renderPDF(w http.ResponseWriter, r *http.Request, id string) {
	if h.pdf == nil {
		writeErr(w, http.StatusInternalServerError, "pdf renderer is not configured")
		return
	}
	o, err := h.uc.Get(r.Context(), id)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	out, err := h.pdf.Render(o)
	if err != nil {
		log.Printf("[order_handler] pdf render order=%s: %v", id, err)
		writeErr(w, http.StatusInternalServerError, "could not render pdf")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="pedido-%s.pdf"`, id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
