package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Armmuh/naija-coffee-oasis/internal/domain"
	"github.com/Armmuh/naija-coffee-oasis/internal/service"
	"github.com/Armmuh/naija-coffee-oasis/pkg/validator"
)

// CheckoutHandler handles the checkout endpoint.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// CheckoutRequest is the JSON request body for placing an order.
type CheckoutRequest struct {
	PaymentMethod string         `json:"payment_method" validate:"required"`
	Address       domain.Address `json:"address"`
	Notes         string         `json:"notes"`
}

// PlaceOrder handles POST /api/v1/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "user id is required")
		return
	}

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), userID, &service.CheckoutInput{
		PaymentMethod: req.PaymentMethod,
		Address:       req.Address,
		Notes:         req.Notes,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: order})
}
