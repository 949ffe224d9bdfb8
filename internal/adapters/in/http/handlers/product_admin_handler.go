// internal/adapters/in/http/handlers/product_admin_handler.go
package handlers

import (
	"log"
	"net/http"
	"time"

	usecase "ardulimp/internal/application/usecase"
	productdom "ardulimp/internal/domain/product"
)

const maxImageBytes = 8 << 20 // 8MB multipart upload

// ProductAdminHandler serves the admin product endpoints:
//
//	GET    /api/admin/products            (?q=)
//	POST   /api/admin/products
//	GET    /api/admin/products/{id}
//	PUT    /api/admin/products/{id}
//	DELETE /api/admin/products/{id}
//	POST   /api/admin/products/{id}/image (multipart, field "file")
type ProductAdminHandler struct {
	uc *usecase.ProductUsecase
}

func NewProductAdminHandler(uc *usecase.ProductUsecase) *ProductAdminHandler {
	return &ProductAdminHandler{uc: uc}
}

type productRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	Unit             string `json:"unit"`
	ImageURL         string `json:"imageUrl"`
	Price            int64  `json:"price"`
	StockQuantity    int    `json:"stockQuantity"`
	MinStockQuantity int    `json:"minStockQuantity"`
}

func (h *ProductAdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "product handler is not configured")
		return
	}

	segs, ok := segmentsAfter(r.URL.Path, "/api/admin/products")
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
		case http.MethodGet:
			h.get(w, r, segs[0])
		case http.MethodPut, http.MethodPatch:
			h.update(w, r, segs[0])
		case http.MethodDelete:
			h.delete(w, r, segs[0])
		default:
			methodNotAllowed(w)
		}
	case len(segs) == 2 && segs[1] == "image":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		h.uploadImage(w, r, segs[0])
	default:
		http.NotFound(w, r)
	}
}

func (h *ProductAdminHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.ListAdmin(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ProductAdminHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.uc.Get(r.Context(), id)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductAdminHandler) create(w http.ResponseWriter, r *http.Request) {
	var body productRequest
	if err := readJSON(w, r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	p, err := h.uc.Create(r.Context(), usecase.CreateProductInput{
		Name:             body.Name,
		Description:      body.Description,
		Category:         body.Category,
		Unit:             body.Unit,
		ImageURL:         body.ImageURL,
		Price:            body.Price,
		StockQuantity:    body.StockQuantity,
		MinStockQuantity: body.MinStockQuantity,
	})
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductAdminHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var patch productdom.Patch
	if err := readJSON(w, r, &patch); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	p, err := h.uc.Update(r.Context(), id, patch)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductAdminHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.uc.Delete(r.Context(), id); err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *ProductAdminHandler) uploadImage(w http.ResponseWriter, r *http.Request, id string) {
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	p, err := h.uc.UploadImage(r.Context(), id, header.Filename, contentType, file)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}

	log.Printf("[product_handler] image product=%s file=%s size=%d elapsed=%s", id, header.Filename, header.Size, time.Since(start))
	writeJSON(w, http.StatusOK, p)
}

// StatsHandler serves GET /api/admin/stats for the dashboard cards.
type StatsHandler struct {
	uc *usecase.ProductUsecase
}

func NewStatsHandler(uc *usecase.ProductUsecase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "stats handler is not configured")
		return
	}
	s, err := h.uc.Stats(r.Context())
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
