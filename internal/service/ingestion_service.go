package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"stocktrack/internal/catalog"
	"stocktrack/internal/domain"
	"stocktrack/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrBarcodeRequired = errors.New("barcode is required")
	ErrProductNotFound = errors.New("product not found")
)

// CatalogClient is the external lookup dependency of the ingestion service
type CatalogClient interface {
	Lookup(ctx context.Context, barcode string) (*catalog.ProductInfo, error)
}

// IngestionService defines the get-or-create product ingestion flow
type IngestionService interface {
	// Ingest returns the product for a barcode, creating it from external
	// catalog data on first sight. The boolean reports whether a new record
	// was created.
	Ingest(ctx context.Context, barcode string) (*domain.Product, bool, error)
}

type ingestionService struct {
	productRepo repository.ProductRepository
	catalog     CatalogClient
}

// NewIngestionService creates a new instance of IngestionService
func NewIngestionService(productRepo repository.ProductRepository, catalogClient CatalogClient) IngestionService {
	return &ingestionService{
		productRepo: productRepo,
		catalog:     catalogClient,
	}
}

// Ingest is idempotent per barcode: repeated or concurrent submissions of the
// same barcode always resolve to the single persisted record.
func (s *ingestionService) Ingest(ctx context.Context, barcode string) (*domain.Product, bool, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, false, ErrBarcodeRequired
	}

	// Fast path: already scanned before
	existing, err := s.productRepo.FindByBarcode(ctx, barcode)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrProductNotFound) {
		return nil, false, fmt.Errorf("failed to check existing product: %w", err)
	}

	info, err := s.catalog.Lookup(ctx, barcode)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, false, ErrProductNotFound
		}
		return nil, false, fmt.Errorf("external catalog lookup failed: %w", err)
	}

	product := s.normalize(barcode, info)

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateBarcode) {
			// A concurrent ingestion for the same barcode won the race;
			// return its record instead of surfacing the conflict.
			winner, fetchErr := s.productRepo.FindByBarcode(ctx, barcode)
			if fetchErr != nil {
				return nil, false, fmt.Errorf("failed to re-fetch product after conflict: %w", fetchErr)
			}
			return winner, false, nil
		}
		return nil, false, fmt.Errorf("failed to persist product: %w", err)
	}

	return product, true, nil
}

// normalize builds a candidate product from external data, applying catalog
// defaults for missing optional fields. The requested barcode is
// authoritative regardless of what the external payload claims, and the
// category always starts as Uncategorized.
func (s *ingestionService) normalize(barcode string, info *catalog.ProductInfo) *domain.Product {
	description := strings.TrimSpace(info.Description)
	if description == "" {
		description = domain.DefaultDescription
	}

	imageURL := strings.TrimSpace(info.ImageURL)
	if imageURL == "" {
		imageURL = domain.DefaultImageURL
	}

	price := info.Price
	if price < 0 {
		price = 0
	}

	return &domain.Product{
		ID:          uuid.New(),
		Barcode:     barcode,
		Name:        strings.TrimSpace(info.Name),
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
		Category:    domain.DefaultCategory,
		CreatedAt:   time.Now().UTC(),
	}
}
