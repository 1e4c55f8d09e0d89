package service

import (
	"context"
	"fmt"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/repository"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/search"
)

// categoryDefs is the storefront filter bar, in display order
var categoryDefs = []models.Category{
	{ID: "all", Name: "All Items", Icon: "🥩"},
	{ID: "chicken", Name: "Chicken", Icon: "🐓"},
	{ID: "mutton", Name: "Mutton", Icon: "🐑"},
	{ID: "fish", Name: "Fish & Seafood", Icon: "🐟"},
	{ID: "processed", Name: "Processed Items", Icon: "🍖"},
}

// ProductService handles business logic for products
type ProductService struct {
	repo  repository.ProductRepository
	index *search.Index
}

// NewProductService creates a new product service and indexes the catalog.
// The catalog is static, so the index is built once.
func NewProductService(ctx context.Context, repo repository.ProductRepository) (*ProductService, error) {
	products, err := repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	return &ProductService{
		repo:  repo,
		index: search.NewIndex(products),
	}, nil
}

// ListProducts returns products matching the filter
func (s *ProductService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	return s.index.Search(filter), nil
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Categories returns the filter bar entries with product counts
func (s *ProductService) Categories(ctx context.Context) ([]models.Category, error) {
	categories := make([]models.Category, len(categoryDefs))
	for i, c := range categoryDefs {
		c.Count = len(s.index.Search(models.ProductFilter{Category: c.ID}))
		categories[i] = c
	}
	return categories, nil
}
