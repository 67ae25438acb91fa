package service

import (
	"context"
	"fmt"

	"stocktrack/internal/domain"
	"stocktrack/internal/repository"

	"golang.org/x/sync/errgroup"
)

// recentProductLimit caps the recently-added list on the dashboard
const recentProductLimit = 5

// DashboardStats aggregates catalog-wide counts for the analytics endpoint
type DashboardStats struct {
	ProductsByCategory    map[string]int    `json:"productsByCategory"`
	RecentlyAddedProducts []*domain.Product `json:"recentlyAddedProducts"`
	TotalProducts         int               `json:"totalProducts"`
}

// AnalyticsService computes aggregate views over the product store
type AnalyticsService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type analyticsService struct {
	productRepo repository.ProductRepository
}

// NewAnalyticsService creates a new instance of AnalyticsService
func NewAnalyticsService(productRepo repository.ProductRepository) AnalyticsService {
	return &analyticsService{productRepo: productRepo}
}

// Dashboard runs the three independent aggregations concurrently. No snapshot
// consistency is guaranteed between them; a product inserted mid-computation
// may appear in one result and not another.
func (s *analyticsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := s.productRepo.CountByCategory(gctx)
		if err != nil {
			return err
		}
		stats.ProductsByCategory = counts
		return nil
	})

	g.Go(func() error {
		recent, err := s.productRepo.MostRecent(gctx, recentProductLimit)
		if err != nil {
			return err
		}
		stats.RecentlyAddedProducts = recent
		return nil
	})

	g.Go(func() error {
		total, err := s.productRepo.CountAll(gctx)
		if err != nil {
			return err
		}
		stats.TotalProducts = total
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}

	return stats, nil
}
