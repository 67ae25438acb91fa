package service

import (
	"context"
	"fmt"
	"strings"

	"stocktrack/internal/domain"
	"stocktrack/internal/repository"

	"github.com/google/uuid"
)

// CategoryAll is the sentinel category value meaning "no category filter"
const CategoryAll = "All"

// QueryService translates browse/filter/search parameters into store queries
type QueryService interface {
	ListProducts(ctx context.Context, category, search string) ([]*domain.Product, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, category string) (*domain.Product, error)
}

type queryService struct {
	productRepo repository.ProductRepository
}

// NewQueryService creates a new instance of QueryService
func NewQueryService(productRepo repository.ProductRepository) QueryService {
	return &queryService{productRepo: productRepo}
}

// ListProducts returns all products matching the optional category and search
// filters, newest first. No pagination is applied.
func (s *queryService) ListProducts(ctx context.Context, category, search string) ([]*domain.Product, error) {
	category = strings.TrimSpace(category)
	if category == CategoryAll {
		category = ""
	}

	filter := repository.ProductFilter{
		Category: category,
		Search:   strings.TrimSpace(search),
	}

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	return products, nil
}

// UpdateCategory recategorizes a product. Only the category field is mutable.
func (s *queryService) UpdateCategory(ctx context.Context, id uuid.UUID, category string) (*domain.Product, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		category = domain.DefaultCategory
	}

	product, err := s.productRepo.UpdateCategory(ctx, id, category)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return product, nil
}
