package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Armmuh/naija-coffee-oasis/internal/domain"
	"github.com/Armmuh/naija-coffee-oasis/internal/event"
	"github.com/Armmuh/naija-coffee-oasis/internal/repository"
	apperrors "github.com/Armmuh/naija-coffee-oasis/pkg/errors"
)

// Order listing pagination bounds.
const (
	defaultOrdersPerPage = 20
	maxOrdersPerPage     = 100
)

// OrderService implements the business logic for order operations.
type OrderService struct {
	repo     repository.OrderRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(repo repository.OrderRepository, producer *event.Producer, logger *slog.Logger) *OrderService {
	return &OrderService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// ListOrders returns orders matching the filter with the total count.
func (s *OrderService) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int, error) {
	if filter.Status != nil && !domain.IsValidOrderStatus(*filter.Status) {
		return nil, 0, apperrors.InvalidInput(fmt.Sprintf("unknown order status %q", *filter.Status))
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = defaultOrdersPerPage
	}
	if filter.PerPage > maxOrdersPerPage {
		filter.PerPage = maxOrdersPerPage
	}

	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}

	return orders, total, nil
}

// GetOrder retrieves an order by its ID.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// UpdateStatus moves an order to a new status, enforcing the lifecycle:
// pending orders can be paid or cancelled, paid orders shipped or cancelled,
// shipped orders delivered. Delivered and cancelled orders are final.
func (s *OrderService) UpdateStatus(ctx context.Context, id, newStatus string) (*domain.Order, error) {
	if !domain.IsValidOrderStatus(newStatus) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown order status %q", newStatus))
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order for status update: %w", err)
	}

	if !order.CanTransitionTo(newStatus) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("cannot move order from %s to %s", order.Status, newStatus))
	}

	oldStatus := order.Status
	now := time.Now().UTC()

	if err := s.repo.UpdateStatus(ctx, id, newStatus, now); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	order.Status = newStatus
	order.UpdatedAt = now

	if err := s.producer.PublishOrderStatusChanged(ctx, id, oldStatus, newStatus); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.status_changed event",
			slog.String("order_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order status updated",
		slog.String("order_id", id),
		slog.String("old_status", oldStatus),
		slog.String("new_status", newStatus),
	)

	return order, nil
}
