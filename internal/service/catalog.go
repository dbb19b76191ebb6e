package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vibeshop/vibeshop/internal/models"
	"github.com/vibeshop/vibeshop/internal/repo"
)

// CatalogService is the read-only product lookup. The catalog itself is
// seeded externally and never mutated here.
type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}
