package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Armmuh/naija-coffee-oasis/internal/catalog"
	"github.com/Armmuh/naija-coffee-oasis/internal/service"
	"github.com/Armmuh/naija-coffee-oasis/pkg/validator"
)

// ProductHandler handles HTTP requests for catalog endpoints.
type ProductHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateProductRequest is the JSON request body for creating a product.
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=500"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category" validate:"required"`
	Price       int64  `json:"price" validate:"gte=0"`
	Stock       int    `json:"stock" validate:"gte=0"`
}

// UpdateProductRequest is the JSON request body for updating a product.
// Omitted fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Category    *string `json:"category"`
	Price       *int64  `json:"price"`
	Stock       *int    `json:"stock"`
}

// List handles GET /api/v1/products
//
// Query parameters: category, q, sort, page, page_size.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	view := catalog.View{
		Category: q.Get("category"),
		Query:    q.Get("q"),
		Sort:     q.Get("sort"),
	}

	page := parseIntParam(q.Get("page"), 1)
	pageSize := parseIntParam(q.Get("page_size"), catalog.DefaultPageSize)

	result, err := h.service.ListView(r.Context(), view, page, pageSize)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: result})
}

// Get handles GET /api/v1/products/{productID}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	if productID == "" {
		writeBadRequest(w, "productID is required")
		return
	}

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: product})
}

// Create handles POST /api/v1/admin/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), &service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: product})
}

// Update handles PUT /api/v1/admin/products/{productID}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	if productID == "" {
		writeBadRequest(w, "productID is required")
		return
	}

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), productID, &service.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: product})
}

// Delete handles DELETE /api/v1/admin/products/{productID}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	if productID == "" {
		writeBadRequest(w, "productID is required")
		return
	}

	if err := h.service.DeleteProduct(r.Context(), productID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]string{"status": "deleted"}})
}

func parseIntParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
