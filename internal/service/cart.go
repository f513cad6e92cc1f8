package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Armmuh/naija-coffee-oasis/internal/domain"
	"github.com/Armmuh/naija-coffee-oasis/internal/event"
	"github.com/Armmuh/naija-coffee-oasis/internal/repository"
	apperrors "github.com/Armmuh/naija-coffee-oasis/pkg/errors"
)

// Cart operation upper-bound limits to prevent abuse.
const (
	// MaxQuantityPerLine is the maximum quantity allowed for a single cart line.
	MaxQuantityPerLine = 100
	// MaxLinesPerCart is the maximum number of distinct lines allowed in a cart.
	MaxLinesPerCart = 50
)

// AddItemInput holds the parameters for adding a product to the cart.
type AddItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	ImageURL  string `json:"image_url"`
	UnitPrice int64  `json:"unit_price" validate:"gte=0"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// CartService implements the business logic for cart operations.
//
// The cart is deliberately forgiving: a cart that cannot be read starts over
// empty, and a cart that cannot be persisted is still returned to the caller.
// Losing a saved cart costs less than blocking a shopper mid-session.
type CartService struct {
	repo     repository.CartRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, producer *event.Producer, logger *slog.Logger) *CartService {
	return &CartService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// GetCart retrieves the cart for a user. A missing or unreadable record
// yields an empty cart, never an error.
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	lines, err := s.repo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.ErrorContext(ctx, "failed to read cart, starting empty",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
		return s.newEmptyCart(userID), nil
	}

	return s.newCart(userID, lines), nil
}

// AddItem adds a product to the user's cart. If a line for the same product
// already exists, quantities are summed and the line's name, price, and image
// are refreshed from the input.
func (s *CartService) AddItem(ctx context.Context, userID string, input AddItemInput) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if input.ProductID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if input.Name == "" {
		return nil, apperrors.InvalidInput("product name is required")
	}
	if input.Quantity < 1 {
		return nil, apperrors.InvalidInput("quantity must be at least 1")
	}
	if input.UnitPrice < 0 {
		return nil, apperrors.InvalidInput("unit price must not be negative")
	}
	if input.Quantity > MaxQuantityPerLine {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerLine))
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if i := cart.FindLine(input.ProductID); i >= 0 {
		newQty := cart.Items[i].Quantity + input.Quantity
		if newQty > MaxQuantityPerLine {
			return nil, apperrors.InvalidInput(fmt.Sprintf("combined quantity must not exceed %d", MaxQuantityPerLine))
		}
		cart.Items[i].Quantity = newQty
		cart.Items[i].Name = input.Name
		cart.Items[i].UnitPrice = input.UnitPrice
		cart.Items[i].ImageURL = input.ImageURL
	} else {
		if len(cart.Items) >= MaxLinesPerCart {
			return nil, apperrors.InvalidInput(fmt.Sprintf("cart must not contain more than %d lines", MaxLinesPerCart))
		}
		cart.Items = append(cart.Items, domain.CartLine{
			ProductID: input.ProductID,
			Name:      input.Name,
			ImageURL:  input.ImageURL,
			UnitPrice: input.UnitPrice,
			Quantity:  input.Quantity,
		})
	}

	s.persist(ctx, cart)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("user_id", userID),
		slog.String("product_id", input.ProductID),
		slog.Int("quantity", input.Quantity),
	)

	return cart, nil
}

// SetQuantity replaces the quantity of a cart line. A quantity below 1
// removes the line. A product not in the cart is a no-op.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if quantity > MaxQuantityPerLine {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerLine))
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.FindLine(productID)
	if i < 0 {
		return cart, nil
	}

	if quantity < 1 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	} else {
		cart.Items[i].Quantity = quantity
	}

	s.persist(ctx, cart)

	s.logger.InfoContext(ctx, "cart line quantity set",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// RemoveItem removes a product's line from the cart. Removing a product that
// is not in the cart is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.FindLine(productID)
	if i < 0 {
		return cart, nil
	}

	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)

	s.persist(ctx, cart)

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
	)

	return cart, nil
}

// ClearCart removes all lines from the user's cart.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	if err := s.producer.PublishCartCleared(ctx, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("user_id", userID),
	)

	return nil
}

// persist writes the cart back and publishes cart.updated. Neither failure
// reaches the caller: the in-memory cart remains the session's truth.
func (s *CartService) persist(ctx context.Context, cart *domain.Cart) {
	cart.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, cart.UserID, cart.Items); err != nil {
		s.logger.ErrorContext(ctx, "failed to save cart",
			slog.String("user_id", cart.UserID),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("user_id", cart.UserID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *CartService) newCart(userID string, lines []domain.CartLine) *domain.Cart {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return &domain.Cart{
		UserID:    userID,
		Items:     lines,
		UpdatedAt: time.Now().UTC(),
	}
}

func (s *CartService) newEmptyCart(userID string) *domain.Cart {
	return s.newCart(userID, nil)
}
