package repository

import (
	"context"
	"time"

	"github.com/Armmuh/naija-coffee-oasis/internal/domain"
)

// CartRepository persists the per-user cart line sequence.
type CartRepository interface {
	// Get retrieves the stored lines for a user. Returns ErrNotFound when no
	// record exists; a malformed record is discarded and reported the same way.
	Get(ctx context.Context, userID string) ([]domain.CartLine, error)

	// Save overwrites the stored lines for a user.
	Save(ctx context.Context, userID string, lines []domain.CartLine) error

	// Delete removes the stored record for a user.
	Delete(ctx context.Context, userID string) error
}

// ProductRepository persists catalog products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// ListAll returns the whole catalog; the in-memory view pipeline handles
	// filtering, sorting, and pagination.
	ListAll(ctx context.Context) ([]domain.Product, error)

	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

// OrderFilter narrows the admin order listing.
type OrderFilter struct {
	UserID  *string
	Status  *string
	Page    int
	PerPage int
}

// OrderRepository persists orders and their line items.
type OrderRepository interface {
	// Create inserts the order and its lines atomically.
	Create(ctx context.Context, order *domain.Order) error

	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// List returns orders matching the filter plus the total count.
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, int, error)

	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
}
