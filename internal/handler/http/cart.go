package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Armmuh/naija-coffee-oasis/internal/service"
	apperrors "github.com/Armmuh/naija-coffee-oasis/pkg/errors"
	"github.com/Armmuh/naija-coffee-oasis/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	carts   *service.CartService
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(carts *service.CartService, catalog *service.CatalogService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: catalog,
		logger:  logger,
	}
}

// AddItemRequest is the JSON request body for adding a product to the cart.
// The product snapshot (name, price, image) comes from the catalog, not the
// client.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// SetQuantityRequest is the JSON request body for setting a line's quantity.
type SetQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "user id is required")
		return
	}

	cart, err := h.carts.GetCart(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: cart})
}

// AddItem handles POST /api/v1/cart/items
//
// The product is resolved from the catalog and the requested quantity is
// checked against available stock before the cart is touched.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "user id is required")
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	cart, err := h.carts.GetCart(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	requested := req.Quantity
	if i := cart.FindLine(product.ID); i >= 0 {
		requested += cart.Items[i].Quantity
	}
	if !product.HasStock(requested) {
		writeError(w, r, h.logger, apperrors.OutOfStock(product.Name, product.Stock))
		return
	}

	cart, err = h.carts.AddItem(r.Context(), userID, service.AddItemInput{
		ProductID: product.ID,
		Name:      product.Name,
		ImageURL:  product.ImageURL,
		UnitPrice: product.Price,
		Quantity:  req.Quantity,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: cart})
}

// SetQuantity handles PUT /api/v1/cart/items/{productID}
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "user id is required")
		return
	}

	productID := chi.URLParam(r, "productID")
	if productID == "" {
		writeBadRequest(w, "productID is required")
		return
	}

	var req SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	cart, err := h.carts.SetQuantity(r.Context(), userID, productID, req.Quantity)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: cart})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "user id is required")
		return
	}

	productID := chi.URLParam(r, "productID")
	if productID == "" {
		writeBadRequest(w, "productID is required")
		return
	}

	cart, err := h.carts.RemoveItem(r.Context(), userID, productID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: cart})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "user id is required")
		return
	}

	if err := h.carts.ClearCart(r.Context(), userID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]string{"status": "cleared"}})
}
