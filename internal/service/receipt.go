package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vibeshop/vibeshop/internal/models"
	"github.com/vibeshop/vibeshop/internal/repo"
)

// ReceiptService reads the append-only receipt archive. Writes happen only
// inside the checkout transaction.
type ReceiptService struct {
	Repo *repo.GormRepo
}

func (s *ReceiptService) GetReceipt(ctx context.Context, userID, id uint) (*models.Receipt, error) {
	receipt, err := s.Repo.GetReceipt(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("receipt %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if receipt.UserID != userID {
		return nil, fmt.Errorf("receipt %d: %w", id, ErrNotFound)
	}
	return receipt, nil
}

func (s *ReceiptService) ListReceipts(ctx context.Context, userID uint, limit, offset int) ([]models.Receipt, error) {
	return s.Repo.ListReceipts(ctx, userID, limit, offset)
}
