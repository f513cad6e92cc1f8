package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Armmuh/naija-coffee-oasis/internal/domain"
	pkgkafka "github.com/Armmuh/naija-coffee-oasis/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicCartUpdated        = "storefront.cart.updated"
	TopicCartCleared        = "storefront.cart.cleared"
	TopicOrderCreated       = "storefront.order.created"
	TopicOrderStatusChanged = "storefront.order.status_changed"
	TopicProductCreated     = "storefront.product.created"
	TopicProductUpdated     = "storefront.product.updated"
	TopicProductDeleted     = "storefront.product.deleted"
)

// Aggregate type constants.
const (
	AggregateTypeCart    = "cart"
	AggregateTypeOrder   = "order"
	AggregateTypeProduct = "product"
)

// Source identifier for events originating from the storefront service.
const SourceStorefront = "storefront"

// CartUpdatedData is the payload for a cart.updated event (full cart snapshot).
type CartUpdatedData struct {
	UserID     string         `json:"user_id"`
	Items      []CartLineData `json:"items"`
	TotalItems int            `json:"total_items"`
	Subtotal   int64          `json:"subtotal"`
}

// CartLineData is the event payload for a cart line.
type CartLineData struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	UserID string `json:"user_id"`
}

// OrderCreatedData is the payload for an order.created event (full order snapshot).
type OrderCreatedData struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Status          string          `json:"status"`
	Items           []OrderLineData `json:"items"`
	Subtotal        int64           `json:"subtotal"`
	ShippingFee     int64           `json:"shipping_fee"`
	Total           int64           `json:"total"`
	PaymentMethod   string          `json:"payment_method"`
	ShippingAddress domain.Address  `json:"shipping_address"`
	Notes           string          `json:"notes,omitempty"`
}

// OrderLineData is the event payload for an order line.
type OrderLineData struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// OrderStatusChangedData is the payload for an order.status_changed event.
type OrderStatusChangedData struct {
	OrderID   string `json:"order_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// ProductChangedData is the payload for product lifecycle events. LegacyID
// carries the derived numeric identifier for consumers that key on integers.
type ProductChangedData struct {
	ID       string `json:"id"`
	LegacyID uint64 `json:"legacy_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
	Stock    int    `json:"stock"`
}

// ProductDeletedData is the payload for a product.deleted event.
type ProductDeletedData struct {
	ID string `json:"id"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event with the full cart snapshot.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	items := make([]CartLineData, len(cart.Items))
	for i, line := range cart.Items {
		items[i] = CartLineData{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		}
	}

	data := CartUpdatedData{
		UserID:     cart.UserID,
		Items:      items,
		TotalItems: cart.TotalItems(),
		Subtotal:   cart.Subtotal(),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.UserID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("user_id", cart.UserID),
		slog.Int("total_items", cart.TotalItems()),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, userID string) error {
	event, err := pkgkafka.NewEvent(TopicCartCleared, userID, AggregateTypeCart, SourceStorefront, CartClearedData{UserID: userID})
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("user_id", userID),
	)

	return nil
}

// PublishOrderCreated publishes an order.created event with the full order snapshot.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	items := make([]OrderLineData, len(order.Items))
	for i, line := range order.Items {
		items[i] = OrderLineData{
			ID:        line.ID,
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		}
	}

	data := OrderCreatedData{
		ID:              order.ID,
		UserID:          order.UserID,
		Status:          order.Status,
		Items:           items,
		Subtotal:        order.Subtotal,
		ShippingFee:     order.ShippingFee,
		Total:           order.Total,
		PaymentMethod:   order.PaymentMethod,
		ShippingAddress: order.ShippingAddress,
		Notes:           order.Notes,
	}

	event, err := pkgkafka.NewEvent(TopicOrderCreated, order.ID, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderCreated, event); err != nil {
		return fmt.Errorf("publish order.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.created event",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
	)

	return nil
}

// PublishOrderStatusChanged publishes an order.status_changed event.
func (p *Producer) PublishOrderStatusChanged(ctx context.Context, orderID, oldStatus, newStatus string) error {
	data := OrderStatusChangedData{
		OrderID:   orderID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}

	event, err := pkgkafka.NewEvent(TopicOrderStatusChanged, orderID, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.status_changed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderStatusChanged, event); err != nil {
		return fmt.Errorf("publish order.status_changed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.status_changed event",
		slog.String("order_id", orderID),
		slog.String("old_status", oldStatus),
		slog.String("new_status", newStatus),
	)

	return nil
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	return p.publishProductChanged(ctx, TopicProductCreated, product)
}

// PublishProductUpdated publishes a product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, product *domain.Product) error {
	return p.publishProductChanged(ctx, TopicProductUpdated, product)
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, productID string) error {
	event, err := pkgkafka.NewEvent(TopicProductDeleted, productID, AggregateTypeProduct, SourceStorefront, ProductDeletedData{ID: productID})
	if err != nil {
		return fmt.Errorf("create product.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductDeleted, event); err != nil {
		return fmt.Errorf("publish product.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.deleted event",
		slog.String("product_id", productID),
	)

	return nil
}

func (p *Producer) publishProductChanged(ctx context.Context, topic string, product *domain.Product) error {
	data := ProductChangedData{
		ID:       product.ID,
		LegacyID: domain.LegacyNumericID(product.ID),
		Name:     product.Name,
		Category: product.Category,
		Price:    product.Price,
		Stock:    product.Stock,
	}

	event, err := pkgkafka.NewEvent(topic, product.ID, AggregateTypeProduct, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published product event",
		slog.String("topic", topic),
		slog.String("product_id", product.ID),
	)

	return nil
}
