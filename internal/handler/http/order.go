package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Armmuh/naija-coffee-oasis/internal/repository"
	"github.com/Armmuh/naija-coffee-oasis/internal/service"
	apperrors "github.com/Armmuh/naija-coffee-oasis/pkg/errors"
	"github.com/Armmuh/naija-coffee-oasis/pkg/pagination"
	"github.com/Armmuh/naija-coffee-oasis/pkg/validator"
)

// OrderHandler handles HTTP requests for order endpoints.
type OrderHandler struct {
	service *service.OrderService
	logger  *slog.Logger
}

// NewOrderHandler creates a new order HTTP handler.
func NewOrderHandler(svc *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		service: svc,
		logger:  logger,
	}
}

// UpdateStatusRequest is the JSON request body for an order status change.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListMine handles GET /api/v1/orders
//
// Returns the calling user's orders, newest first. Supports status, page and
// per_page query parameters.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "user id is required")
		return
	}

	params := pagination.FromRequest(r, 20, 100)
	filter := repository.OrderFilter{
		UserID:  &userID,
		Page:    params.Page,
		PerPage: params.PerPage,
	}
	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = &s
	}

	orders, total, err := h.service.ListOrders(r.Context(), filter)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, pagination.NewResult(orders, total, params))
}

// ListAll handles GET /api/v1/admin/orders
//
// Admin listing across all users, filterable by user_id and status.
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r, 20, 100)
	filter := repository.OrderFilter{
		Page:    params.Page,
		PerPage: params.PerPage,
	}
	if uid := r.URL.Query().Get("user_id"); uid != "" {
		filter.UserID = &uid
	}
	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = &s
	}

	orders, total, err := h.service.ListOrders(r.Context(), filter)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, pagination.NewResult(orders, total, params))
}

// Get handles GET /api/v1/orders/{orderID}
//
// Non-admin callers can only fetch their own orders; another user's order
// reads as not found so order IDs are not probeable.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "user id is required")
		return
	}

	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		writeBadRequest(w, "orderID is required")
		return
	}

	order, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if order.UserID != userID && r.Header.Get("X-User-Role") != "admin" {
		writeError(w, r, h.logger, apperrors.NotFound("order", orderID))
		return
	}

	writeJSON(w, http.StatusOK, response{Data: order})
}

// UpdateStatus handles PATCH /api/v1/admin/orders/{orderID}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		writeBadRequest(w, "orderID is required")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: order})
}
