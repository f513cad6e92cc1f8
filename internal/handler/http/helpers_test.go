package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Armmuh/naija-coffee-oasis/internal/domain"
	"github.com/Armmuh/naija-coffee-oasis/internal/event"
	"github.com/Armmuh/naija-coffee-oasis/internal/payment"
	"github.com/Armmuh/naija-coffee-oasis/internal/repository"
	"github.com/Armmuh/naija-coffee-oasis/internal/service"
	pkgkafka "github.com/Armmuh/naija-coffee-oasis/pkg/kafka"
)

// ============================================================================
// Mock repositories
// ============================================================================

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Get(ctx context.Context, userID string) ([]domain.CartLine, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartLine), args.Error(1)
}

func (m *mockCartRepository) Save(ctx context.Context, userID string, lines []domain.CartLine) error {
	args := m.Called(ctx, userID, lines)
	return args.Error(0)
}

func (m *mockCartRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) Update(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, o *domain.Order) error {
	args := m.Called(ctx, o)
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
		return nil, args.Int(1), args.Error(2)
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

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testEventProducer() *event.Producer {
	logger := testLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:19092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	return event.NewProducer(kafkaProducer, logger)
}

func testCartService(repo *mockCartRepository) *service.CartService {
	return service.NewCartService(repo, testEventProducer(), testLogger())
}

func testCatalogService(repo *mockProductRepository) *service.CatalogService {
	return service.NewCatalogService(repo, testEventProducer(), testLogger())
}

func testOrderService(repo *mockOrderRepository) *service.OrderService {
	return service.NewOrderService(repo, testEventProducer(), testLogger())
}

// testResponse mirrors the JSON envelope for decoding in assertions.
type testResponse struct {
	Data  json.RawMessage `json:"data"`
	Error *errorResponse  `json:"error"`
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) testResponse {
	t.Helper()
	var resp testResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// setupRouter builds a chi router matching the production route layout so the
// middleware chain is exercised end-to-end.
func setupRouter(
	cartRepo *mockCartRepository,
	productRepo *mockProductRepository,
	orderRepo *mockOrderRepository,
	charger *mockCharger,
) *chi.Mux {
	logger := testLogger()

	cartSvc := testCartService(cartRepo)
	catalogSvc := testCatalogService(productRepo)
	checkoutSvc := service.NewCheckoutService(cartSvc, orderRepo, charger, testEventProducer(), logger)
	orderSvc := testOrderService(orderRepo)

	cartHandler := NewCartHandler(cartSvc, catalogSvc, logger)
	productHandler := NewProductHandler(catalogSvc, logger)
	checkoutHandler := NewCheckoutHandler(checkoutSvc, logger)
	orderHandler := NewOrderHandler(orderSvc, logger)

	r := chi.NewRouter()

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", productHandler.List)
		r.Get("/{productID}", productHandler.Get)
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(UserIDFromHeader)

		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ClearCart)

		r.Post("/items", cartHandler.AddItem)
		r.Put("/items/{productID}", cartHandler.SetQuantity)
		r.Delete("/items/{productID}", cartHandler.RemoveItem)
	})

	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(UserIDFromHeader)

		r.Post("/", checkoutHandler.PlaceOrder)
	})

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(UserIDFromHeader)

		r.Get("/", orderHandler.ListMine)
		r.Get("/{orderID}", orderHandler.Get)
	})

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(UserIDFromHeader)
		r.Use(AdminOnly)

		r.Post("/products", productHandler.Create)
		r.Put("/products/{productID}", productHandler.Update)
		r.Delete("/products/{productID}", productHandler.Delete)

		r.Get("/orders", orderHandler.ListAll)
		r.Patch("/orders/{orderID}/status", orderHandler.UpdateStatus)
	})

	return r
}

// ============================================================================
// Fixtures
// ============================================================================

func sampleLines() []domain.CartLine {
	return []domain.CartLine{
		{
			ProductID: "prod-1",
			Name:      "Lagos Premium Coffee",
			ImageURL:  "https://img.example.com/lagos-premium.jpg",
			UnitPrice: 450000,
			Quantity:  2,
		},
	}
}

func sampleCatalogProduct() *domain.Product {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &domain.Product{
		ID:          "prod-1",
		Name:        "Lagos Premium Coffee",
		Description: "Dark roast arabica beans from the Mambilla plateau.",
		ImageURL:    "https://img.example.com/lagos-premium.jpg",
		Category:    domain.CategoryCoffeeBeans,
		Price:       450000,
		Stock:       25,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func sampleStoredOrder(status string) *domain.Order {
	now := time.Date(2026, 3, 12, 14, 30, 0, 0, time.UTC)
	return &domain.Order{
		ID:     "order-001",
		UserID: "user-123",
		Status: status,
		Items: []domain.OrderLine{
			{
				ID:        "line-001",
				OrderID:   "order-001",
				ProductID: "prod-1",
				Name:      "Lagos Premium Coffee",
				UnitPrice: 450000,
				Quantity:  2,
			},
		},
		Subtotal:      900000,
		ShippingFee:   150000,
		Total:         1050000,
		PaymentMethod: domain.PaymentPayOnDelivery,
		ShippingAddress: domain.Address{
			FullName:    "Adaeze Okonkwo",
			Email:       "adaeze@example.com",
			Phone:       "+2348012345678",
			AddressLine: "15 Awolowo Road, Ikoyi",
			City:        "Lagos",
			State:       "Lagos",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
