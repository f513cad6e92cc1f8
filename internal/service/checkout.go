package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Armmuh/naija-coffee-oasis/internal/domain"
	"github.com/Armmuh/naija-coffee-oasis/internal/event"
	"github.com/Armmuh/naija-coffee-oasis/internal/payment"
	"github.com/Armmuh/naija-coffee-oasis/internal/repository"
	apperrors "github.com/Armmuh/naija-coffee-oasis/pkg/errors"
)

// FlatShippingFee is the delivery charge applied to every order, in kobo.
const FlatShippingFee int64 = 150000

// CardCharger charges cards for card orders. payment.Gateway satisfies this.
type CardCharger interface {
	Charge(ctx context.Context, req payment.ChargeRequest) (*payment.ChargeResult, error)
}

// CheckoutInput holds the parameters for placing an order.
type CheckoutInput struct {
	PaymentMethod string         `json:"payment_method" validate:"required"`
	Address       domain.Address `json:"address" validate:"required"`
	Notes         string         `json:"notes"`
}

// CheckoutService turns a cart into an order.
type CheckoutService struct {
	carts    *CartService
	orders   repository.OrderRepository
	charger  CardCharger
	producer *event.Producer
	logger   *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	carts *CartService,
	orders repository.OrderRepository,
	charger CardCharger,
	producer *event.Producer,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		orders:   orders,
		charger:  charger,
		producer: producer,
		logger:   logger,
	}
}

// PlaceOrder validates the checkout input, charges the card when the payment
// method requires it, persists the order, and clears the cart. A failed card
// charge aborts the checkout with the cart untouched.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID string, input *CheckoutInput) (*domain.Order, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if !domain.IsValidPaymentMethod(input.PaymentMethod) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown payment method %q", input.PaymentMethod))
	}
	if err := validateAddress(&input.Address); err != nil {
		return nil, err
	}

	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	now := time.Now().UTC()
	orderID := uuid.New().String()

	lines := make([]domain.OrderLine, len(cart.Items))
	for i, item := range cart.Items {
		lines[i] = domain.OrderLine{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		}
	}

	subtotal := cart.Subtotal()
	order := &domain.Order{
		ID:              orderID,
		UserID:          userID,
		Status:          domain.OrderStatusPending,
		Items:           lines,
		Subtotal:        subtotal,
		ShippingFee:     FlatShippingFee,
		Total:           subtotal + FlatShippingFee,
		PaymentMethod:   input.PaymentMethod,
		ShippingAddress: input.Address,
		Notes:           input.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if input.PaymentMethod == domain.PaymentCard {
		result, err := s.charger.Charge(ctx, payment.ChargeRequest{
			OrderID:  order.ID,
			UserID:   userID,
			Amount:   order.Total,
			Currency: "NGN",
			Email:    input.Address.Email,
		})
		if err != nil {
			return nil, fmt.Errorf("charge card: %w", err)
		}
		order.Status = domain.OrderStatusPaid

		s.logger.InfoContext(ctx, "card payment captured",
			slog.String("order_id", order.ID),
			slog.String("reference", result.Reference),
		)
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// The order exists; losing the cart record now only risks a stale cart.
	if err := s.carts.ClearCart(ctx, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cart after checkout",
			slog.String("user_id", userID),
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("user_id", userID),
		slog.String("payment_method", order.PaymentMethod),
		slog.Int64("total", order.Total),
	)

	return order, nil
}

func validateAddress(addr *domain.Address) error {
	switch {
	case addr.FullName == "":
		return apperrors.InvalidInput("full_name is required")
	case addr.Email == "":
		return apperrors.InvalidInput("email is required")
	case addr.Phone == "":
		return apperrors.InvalidInput("phone is required")
	case addr.AddressLine == "":
		return apperrors.InvalidInput("address_line is required")
	case addr.City == "":
		return apperrors.InvalidInput("city is required")
	case addr.State == "":
		return apperrors.InvalidInput("state is required")
	}
	return nil
}
