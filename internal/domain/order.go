package domain

import "time"

// Order status values. The set is fixed; the admin back-office may only move
// an order along the transitions below.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Payment method values accepted at checkout.
const (
	PaymentPayOnDelivery = "pay-on-delivery"
	PaymentCard          = "card"
)

// Order is a placed customer order. All amounts are in kobo.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	Status          string      `json:"status"`
	Items           []OrderLine `json:"items"`
	Subtotal        int64       `json:"subtotal"`
	ShippingFee     int64       `json:"shipping_fee"`
	Total           int64       `json:"total"`
	PaymentMethod   string      `json:"payment_method"`
	ShippingAddress Address     `json:"shipping_address"`
	Notes           string      `json:"notes,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderLine is one purchased product within an order.
type OrderLine struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// LineTotal returns unit price times quantity for this line.
func (l *OrderLine) LineTotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Address is the shipping destination captured at checkout.
type Address struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	State       string `json:"state"`
}

// ValidOrderStatuses returns all order statuses.
func ValidOrderStatuses() []string {
	return []string{
		OrderStatusPending,
		OrderStatusPaid,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

// IsValidOrderStatus checks whether status is in the fixed set.
func IsValidOrderStatus(status string) bool {
	for _, s := range ValidOrderStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidPaymentMethod checks whether method is an accepted payment method.
func IsValidPaymentMethod(method string) bool {
	return method == PaymentPayOnDelivery || method == PaymentCard
}

func allowedTransitions() map[string][]string {
	return map[string][]string{
		OrderStatusPending:   {OrderStatusPaid, OrderStatusCancelled},
		OrderStatusPaid:      {OrderStatusShipped, OrderStatusCancelled},
		OrderStatusShipped:   {OrderStatusDelivered},
		OrderStatusDelivered: {},
		OrderStatusCancelled: {},
	}
}

// CanTransitionTo reports whether the order may move to the target status.
func (o *Order) CanTransitionTo(target string) bool {
	allowed, ok := allowedTransitions()[o.Status]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}
