// internal/adapters/in/http/handlers/helper_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	usecase "ardulimp/internal/application/usecase"
	cartdom "ardulimp/internal/domain/cart"
	categorydom "ardulimp/internal/domain/category"
	orderdom "ardulimp/internal/domain/order"
	productdom "ardulimp/internal/domain/product"
)

const maxBodyBytes = 1 << 20 // 1MB

// ============================================================
// HTTP helpers
// ============================================================

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
}

// readJSON decodes the request body into dst, rejecting unknown fields and
// oversized payloads.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeUsecaseErr maps application errors onto HTTP status codes.
func writeUsecaseErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrCartInvalidArgument),
		errors.Is(err, usecase.ErrCheckoutInvalidArgument),
		errors.Is(err, usecase.ErrOrderInvalidArgument),
		errors.Is(err, usecase.ErrProductInvalidArgument),
		errors.Is(err, usecase.ErrCategoryInvalidArgument),
		errors.Is(err, usecase.ErrCheckoutEmptyCart),
		errors.Is(err, orderdom.ErrUnknownStatus),
		errors.Is(err, orderdom.ErrUnknownDelivery),
		errors.Is(err, orderdom.ErrInvalidOrder),
		errors.Is(err, orderdom.ErrEmptyItems),
		errors.Is(err, orderdom.ErrInvalidItem),
		errors.Is(err, cartdom.ErrInvalidCart),
		errors.Is(err, cartdom.ErrInvalidLine),
		errors.Is(err, productdom.ErrInvalidProduct),
		errors.Is(err, productdom.ErrInvalidPrice),
		errors.Is(err, categorydom.ErrInvalidCategory):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrCartProductNotFound),
		errors.Is(err, usecase.ErrOrderNotFound),
		errors.Is(err, usecase.ErrProductNotFound),
		errors.Is(err, usecase.ErrCategoryNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, usecase.ErrInventoryInconsistency):
		writeErr(w, http.StatusConflict, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathSegments splits "/api/admin/orders/abc/pdf" into non-empty segments.
func pathSegments(p string) []string {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// segmentsAfter returns the path segments after the given prefix
// ("/api/cart") and true when the path is under that prefix.
func segmentsAfter(p, prefix string) ([]string, bool) {
	p = strings.TrimRight(p, "/")
	if p == prefix {
		return nil, true
	}
	if !strings.HasPrefix(p, prefix+"/") {
		return nil, false
	}
	return pathSegments(strings.TrimPrefix(p, prefix+"/")), true
}
