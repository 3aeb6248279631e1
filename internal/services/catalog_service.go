package services

import (
	"context"
	"time"

	"order_bot/internal/models"
	"order_bot/internal/repository"

	"go.uber.org/zap"
)

type CatalogService interface {
	// FetchMenu returns the available products in catalog order. Read
	// failures are logged and produce an empty menu.
	FetchMenu(ctx context.Context) []models.Product
}

type catalogService struct {
	repo    repository.CatalogRepository
	timeout time.Duration
	logger  *zap.Logger
}

func NewCatalogService(repo repository.CatalogRepository, timeout time.Duration, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, timeout: timeout, logger: logger}
}

func (s *catalogService) FetchMenu(ctx context.Context) []models.Product {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.logger.Error("failed to fetch catalog", zap.Error(err))
		return []models.Product{}
	}

	menu := make([]models.Product, 0, len(products))
	seen := make(map[string]bool, len(products))
	for _, p := range products {
		if !p.Available {
			continue
		}
		if p.Price < 0 {
			s.logger.Warn("dropping product with negative price",
				zap.String("product_id", p.ID), zap.Float64("price", p.Price))
			continue
		}
		if seen[p.ID] {
			s.logger.Warn("dropping duplicate product id", zap.String("product_id", p.ID))
			continue
		}
		seen[p.ID] = true
		menu = append(menu, p)
	}
	return menu
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
