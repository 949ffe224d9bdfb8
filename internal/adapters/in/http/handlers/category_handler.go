// internal/adapters/in/http/handlers/category_handler.go
package handlers

import (
	"net/http"

	usecase "ardulimp/internal/application/usecase"
)

// CategoryHandler serves the admin category endpoints:
//
//	GET    /api/admin/categories
//	POST   /api/admin/categories          {"name": "Limpeza"}
//	PUT    /api/admin/categories/{id}     {"name": "Cozinha"}
//	DELETE /api/admin/categories/{id}
type CategoryHandler struct {
	uc *usecase.CategoryUsecase
}

func NewCategoryHandler(uc *usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *CategoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "category handler is not configured")
		return
	}

	segs, ok := segmentsAfter(r.URL.Path, "/api/admin/categories")
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch {
	case len(segs) == 0:
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			methodNotAllowed(w)
		}
	case len(segs) == 1:
		switch r.Method {
		case http.MethodPut, http.MethodPatch:
			h.rename(w, r, segs[0])
		case http.MethodDelete:
			h.delete(w, r, segs[0])
		default:
			methodNotAllowed(w)
		}
	default:
		http.NotFound(w, r)
	}
}

func (h *CategoryHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.List(r.Context())
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *CategoryHandler) create(w http.ResponseWriter, r *http.Request) {
	var body categoryRequest
	if err := readJSON(w, r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	c, err := h.uc.Create(r.Context(), body.Name)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CategoryHandler) rename(w http.ResponseWriter, r *http.Request, id string) {
	var body categoryRequest
	if err := readJSON(w, r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	c, err := h.uc.Rename(r.Context(), id, body.Name)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CategoryHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.uc.Delete(r.Context(), id); err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
