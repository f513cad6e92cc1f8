package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Armmuh/naija-coffee-oasis/internal/domain"
	"github.com/Armmuh/naija-coffee-oasis/internal/payment"
	"github.com/Armmuh/naija-coffee-oasis/internal/repository"
	apperrors "github.com/Armmuh/naija-coffee-oasis/pkg/errors"
)

// --- Mocks ---

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	args := m.Called(ctx, id, status, updatedAt)
	return args.Error(0)
}

type mockCharger struct {
	mock.Mock
}

func (m *mockCharger) Charge(ctx context.Context, req payment.ChargeRequest) (*payment.ChargeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.ChargeResult), args.Error(1)
}

// --- Helpers ---

func validCheckoutInput(method string) *CheckoutInput {
	return &CheckoutInput{
		PaymentMethod: method,
		Address: domain.Address{
			FullName:    "Adaeze Okonkwo",
			Email:       "adaeze@example.com",
			Phone:       "+2348012345678",
			AddressLine: "14 Awolowo Road, Ikoyi",
			City:        "Lagos",
			State:       "Lagos",
		},
		Notes: "Call on arrival",
	}
}

func newCheckoutFixture(t *testing.T) (*CheckoutService, *mockCartRepository, *mockOrderRepository, *mockCharger) {
	t.Helper()
	cartRepo := new(mockCartRepository)
	orderRepo := new(mockOrderRepository)
	charger := new(mockCharger)

	producer := newTestEventProducer()
	logger := newTestLogger()
	carts := NewCartService(cartRepo, producer, logger)
	svc := NewCheckoutService(carts, orderRepo, charger, producer, logger)

	return svc, cartRepo, orderRepo, charger
}

// --- Tests ---

func TestPlaceOrder_PayOnDelivery(t *testing.T) {
	svc, cartRepo, orderRepo, charger := newCheckoutFixture(t)
	ctx := context.Background()

	cartRepo.On("Get", ctx, "user-1").Return(storedLines(), nil)
	cartRepo.On("Delete", ctx, "user-1").Return(nil)

	orderRepo.On("Create", ctx, mock.MatchedBy(func(o *domain.Order) bool {
		return o.Status == domain.OrderStatusPending &&
			o.Subtotal == 1280000 &&
			o.ShippingFee == FlatShippingFee &&
			o.Total == 1280000+FlatShippingFee &&
			len(o.Items) == 2
	})).Return(nil)

	order, err := svc.PlaceOrder(ctx, "user-1", validCheckoutInput(domain.PaymentPayOnDelivery))

	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, int64(1430000), order.Total)
	for _, line := range order.Items {
		assert.Equal(t, order.ID, line.OrderID)
		assert.NotEmpty(t, line.ID)
	}

	charger.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
	cartRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestPlaceOrder_CardChargesAndMarksPaid(t *testing.T) {
	svc, cartRepo, orderRepo, charger := newCheckoutFixture(t)
	ctx := context.Background()

	cartRepo.On("Get", ctx, "user-1").Return(storedLines(), nil)
	cartRepo.On("Delete", ctx, "user-1").Return(nil)

	charger.On("Charge", ctx, mock.MatchedBy(func(req payment.ChargeRequest) bool {
		return req.Amount == 1430000 && req.Currency == "NGN" && req.Email == "adaeze@example.com"
	})).Return(&payment.ChargeResult{Reference: "ref-123", Status: "success"}, nil)

	orderRepo.On("Create", ctx, mock.MatchedBy(func(o *domain.Order) bool {
		return o.Status == domain.OrderStatusPaid
	})).Return(nil)

	order, err := svc.PlaceOrder(ctx, "user-1", validCheckoutInput(domain.PaymentCard))

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, order.Status)

	charger.AssertExpectations(t)
	cartRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestPlaceOrder_CardDeclineAbortsWithoutMutation(t *testing.T) {
	svc, cartRepo, orderRepo, charger := newCheckoutFixture(t)
	ctx := context.Background()

	cartRepo.On("Get", ctx, "user-1").Return(storedLines(), nil)
	charger.On("Charge", ctx, mock.Anything).Return(nil, apperrors.PaymentFailed("charge declined"))

	_, err := svc.PlaceOrder(ctx, "user-1", validCheckoutInput(domain.PaymentCard))

	assert.ErrorIs(t, err, apperrors.ErrPaymentFailed)

	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	cartRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	charger.AssertExpectations(t)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	svc, cartRepo, _, _ := newCheckoutFixture(t)
	ctx := context.Background()

	cartRepo.On("Get", ctx, "user-1").Return(nil, apperrors.NotFound("cart", "user-1"))

	_, err := svc.PlaceOrder(ctx, "user-1", validCheckoutInput(domain.PaymentPayOnDelivery))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestPlaceOrder_InvalidPaymentMethod(t *testing.T) {
	svc, _, _, _ := newCheckoutFixture(t)

	_, err := svc.PlaceOrder(context.Background(), "user-1", validCheckoutInput("bank-transfer"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestPlaceOrder_AddressValidation(t *testing.T) {
	svc, _, _, _ := newCheckoutFixture(t)
	ctx := context.Background()

	fields := []struct {
		name   string
		mutate func(*domain.Address)
	}{
		{"full name", func(a *domain.Address) { a.FullName = "" }},
		{"email", func(a *domain.Address) { a.Email = "" }},
		{"phone", func(a *domain.Address) { a.Phone = "" }},
		{"address line", func(a *domain.Address) { a.AddressLine = "" }},
		{"city", func(a *domain.Address) { a.City = "" }},
		{"state", func(a *domain.Address) { a.State = "" }},
	}

	for _, tt := range fields {
		t.Run(tt.name, func(t *testing.T) {
			input := validCheckoutInput(domain.PaymentPayOnDelivery)
			tt.mutate(&input.Address)

			_, err := svc.PlaceOrder(ctx, "user-1", input)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestPlaceOrder_OrderCreateError(t *testing.T) {
	svc, cartRepo, orderRepo, _ := newCheckoutFixture(t)
	ctx := context.Background()

	cartRepo.On("Get", ctx, "user-1").Return(storedLines(), nil)
	orderRepo.On("Create", ctx, mock.Anything).Return(errors.New("database timeout"))

	_, err := svc.PlaceOrder(ctx, "user-1", validCheckoutInput(domain.PaymentPayOnDelivery))

	assert.Error(t, err)
	cartRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPlaceOrder_CartClearFailureDoesNotFailOrder(t *testing.T) {
	svc, cartRepo, orderRepo, _ := newCheckoutFixture(t)
	ctx := context.Background()

	cartRepo.On("Get", ctx, "user-1").Return(storedLines(), nil)
	cartRepo.On("Delete", ctx, "user-1").Return(errors.New("redis: connection refused"))
	orderRepo.On("Create", ctx, mock.Anything).Return(nil)

	order, err := svc.PlaceOrder(ctx, "user-1", validCheckoutInput(domain.PaymentPayOnDelivery))

	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)

	cartRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}
