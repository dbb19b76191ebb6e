package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vibeshop/vibeshop/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

// UpsertLine sets the quantity for (userID, productID). A quantity of zero
// or less removes the line and reports removed=true; removing an absent
// line is a no-op. The product must exist in the catalog.
func (s *CartService) UpsertLine(ctx context.Context, userID, productID uint, quantity int) (*repo.CartLineView, bool, error) {
	if productID == 0 {
		return nil, false, fmt.Errorf("product id required: %w", ErrValidation)
	}

	product, err := s.Repo.GetProduct(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	if err != nil {
		return nil, false, err
	}

	if quantity <= 0 {
		if err := s.Repo.DeleteLineByProduct(ctx, userID, productID); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}

	line, err := s.Repo.UpsertLine(ctx, userID, productID, uint(quantity))
	if err != nil {
		return nil, false, err
	}

	return &repo.CartLineView{
		CartLineID: line.ID,
		ProductID:  product.ID,
		Name:       product.Name,
		Price:      product.Price,
		Quantity:   line.Quantity,
	}, false, nil
}

// ListLines returns the user's lines joined with current catalog data, in
// insertion order, plus the computed cart total.
func (s *CartService) ListLines(ctx context.Context, userID uint) ([]repo.CartLineView, float64, error) {
	lines, err := s.Repo.ListLines(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	var total float64
	for _, line := range lines {
		total += line.Price * float64(line.Quantity)
	}
	return lines, total, nil
}

func (s *CartService) RemoveLine(ctx context.Context, userID, lineID uint) error {
	if lineID == 0 {
		return fmt.Errorf("cart line id required: %w", ErrValidation)
	}
	return s.Repo.RemoveLine(ctx, userID, lineID)
}
