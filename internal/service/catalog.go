package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Armmuh/naija-coffee-oasis/internal/catalog"
	"github.com/Armmuh/naija-coffee-oasis/internal/domain"
	"github.com/Armmuh/naija-coffee-oasis/internal/event"
	"github.com/Armmuh/naija-coffee-oasis/internal/repository"
	apperrors "github.com/Armmuh/naija-coffee-oasis/pkg/errors"
)

// CatalogService implements the business logic for browsing and managing
// the product catalog.
type CatalogService struct {
	repo     repository.ProductRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.ProductRepository, producer *event.Producer, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// ListView loads the catalog and applies the requested view: category filter,
// then text search, then sort, then pagination.
func (s *CatalogService) ListView(ctx context.Context, view catalog.View, page, pageSize int) (*catalog.Page, error) {
	if !catalog.ValidSort(view.Sort) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown sort option %q", view.Sort))
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = catalog.DefaultPageSize
	}

	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	result := catalog.ComputeView(products, view, page, pageSize)
	return &result, nil
}

// GetProduct retrieves a product by its ID.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// CreateProductInput holds the parameters for creating a product.
type CreateProductInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category" validate:"required"`
	Price       int64  `json:"price" validate:"gte=0"`
	Stock       int    `json:"stock" validate:"gte=0"`
}

// UpdateProductInput holds the parameters for updating a product. Nil fields
// are left unchanged.
type UpdateProductInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Category    *string `json:"category"`
	Price       *int64  `json:"price"`
	Stock       *int    `json:"stock"`
}

// CreateProduct adds a new product to the catalog.
func (s *CatalogService) CreateProduct(ctx context.Context, input *CreateProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("product name is required")
	}
	if !domain.IsValidCategory(input.Category) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown category %q", input.Category))
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}
	if input.Stock < 0 {
		return nil, apperrors.InvalidInput("stock must not be negative")
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		Price:       input.Price,
		Stock:       input.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if err := s.producer.PublishProductCreated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("category", product.Category),
	)

	return product, nil
}

// UpdateProduct applies partial changes to an existing product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input *UpdateProductInput) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("product name must not be empty")
		}
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.Category != nil {
		if !domain.IsValidCategory(*input.Category) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("unknown category %q", *input.Category))
		}
		product.Category = *input.Category
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperrors.InvalidInput("price must not be negative")
		}
		product.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, apperrors.InvalidInput("stock must not be negative")
		}
		product.Stock = *input.Stock
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	if err := s.producer.PublishProductUpdated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.updated event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", product.ID),
	)

	return product, nil
}

// DeleteProduct removes a product from the catalog.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if err := s.producer.PublishProductDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.deleted event",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.String("product_id", id),
	)

	return nil
}
