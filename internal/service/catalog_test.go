package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Armmuh/naija-coffee-oasis/internal/catalog"
	"github.com/Armmuh/naija-coffee-oasis/internal/domain"
	apperrors "github.com/Armmuh/naija-coffee-oasis/pkg/errors"
)

// --- Mock Repository ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
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

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestCatalogService(repo *mockProductRepository) *CatalogService {
	return NewCatalogService(repo, newTestEventProducer(), newTestLogger())
}

func catalogFixture() []domain.Product {
	return []domain.Product{
		{ID: "prod-1", Name: "Lagos Premium Coffee", Category: domain.CategoryCoffeeBeans, Price: 450000, Stock: 10},
		{ID: "prod-2", Name: "Abuja Gold Blend", Category: domain.CategoryInstantCoffee, Price: 380000, Stock: 5},
		{ID: "prod-3", Name: "French Press", Category: domain.CategoryBrewingEquipment, Price: 950000, Stock: 2},
	}
}

// --- ListView ---

func TestListView_AppliesViewPipeline(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	repo.On("ListAll", ctx).Return(catalogFixture(), nil)

	page, err := svc.ListView(ctx, catalog.View{Category: domain.CategoryCoffeeBeans}, 1, 12)

	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "prod-1", page.Items[0].ID)

	repo.AssertExpectations(t)
}

func TestListView_DefaultsPageAndSize(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	repo.On("ListAll", ctx).Return(catalogFixture(), nil)

	page, err := svc.ListView(ctx, catalog.View{}, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, catalog.DefaultPageSize, page.PageSize)

	repo.AssertExpectations(t)
}

func TestListView_InvalidSort(t *testing.T) {
	svc := newTestCatalogService(new(mockProductRepository))

	_, err := svc.ListView(context.Background(), catalog.View{Sort: "cheapest"}, 1, 12)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestListView_RepositoryError(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	repo.On("ListAll", ctx).Return(nil, errors.New("database timeout"))

	_, err := svc.ListView(ctx, catalog.View{}, 1, 12)
	assert.Error(t, err)

	repo.AssertExpectations(t)
}

// --- GetProduct ---

func TestGetProduct(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	expected := &domain.Product{ID: "prod-1", Name: "Lagos Premium Coffee"}
	repo.On("GetByID", ctx, "prod-1").Return(expected, nil)

	got, err := svc.GetProduct(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, expected, got)

	repo.AssertExpectations(t)
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, "missing").Return(nil, apperrors.NotFound("product", "missing"))

	_, err := svc.GetProduct(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	repo.AssertExpectations(t)
}

// --- CreateProduct ---

func TestCreateProduct_Success(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(p *domain.Product) bool {
		return p.ID != "" && p.Name == "Kano Single Origin" && p.Category == domain.CategoryCoffeeBeans
	})).Return(nil)

	product, err := svc.CreateProduct(ctx, &CreateProductInput{
		Name:     "Kano Single Origin",
		Category: domain.CategoryCoffeeBeans,
		Price:    520000,
		Stock:    12,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.False(t, product.CreatedAt.IsZero())
	assert.Equal(t, int64(520000), product.Price)

	repo.AssertExpectations(t)
}

func TestCreateProduct_Validation(t *testing.T) {
	svc := newTestCatalogService(new(mockProductRepository))
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateProductInput
	}{
		{"missing name", CreateProductInput{Category: domain.CategoryCoffeeBeans}},
		{"unknown category", CreateProductInput{Name: "Beans", Category: "beans"}},
		{"negative price", CreateProductInput{Name: "Beans", Category: domain.CategoryCoffeeBeans, Price: -1}},
		{"negative stock", CreateProductInput{Name: "Beans", Category: domain.CategoryCoffeeBeans, Stock: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, &tt.input)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

// --- UpdateProduct ---

func TestUpdateProduct_PartialUpdate(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	existing := &domain.Product{
		ID:       "prod-1",
		Name:     "Lagos Premium Coffee",
		Category: domain.CategoryCoffeeBeans,
		Price:    450000,
		Stock:    10,
	}

	repo.On("GetByID", ctx, "prod-1").Return(existing, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(p *domain.Product) bool {
		return p.Price == 475000 && p.Name == "Lagos Premium Coffee" && p.Stock == 10
	})).Return(nil)

	newPrice := int64(475000)
	product, err := svc.UpdateProduct(ctx, "prod-1", &UpdateProductInput{Price: &newPrice})

	require.NoError(t, err)
	assert.Equal(t, int64(475000), product.Price)

	repo.AssertExpectations(t)
}

func TestUpdateProduct_InvalidCategory(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, "prod-1").Return(&domain.Product{ID: "prod-1", Name: "Beans"}, nil)

	bad := "beans"
	_, err := svc.UpdateProduct(ctx, "prod-1", &UpdateProductInput{Category: &bad})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	repo.AssertExpectations(t)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, "missing").Return(nil, apperrors.NotFound("product", "missing"))

	_, err := svc.UpdateProduct(ctx, "missing", &UpdateProductInput{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	repo.AssertExpectations(t)
}

// --- DeleteProduct ---

func TestDeleteProduct(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	repo.On("Delete", ctx, "prod-1").Return(nil)

	assert.NoError(t, svc.DeleteProduct(ctx, "prod-1"))
	repo.AssertExpectations(t)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	repo.On("Delete", ctx, "missing").Return(apperrors.NotFound("product", "missing"))

	err := svc.DeleteProduct(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	repo.AssertExpectations(t)
}
