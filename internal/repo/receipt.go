package repo

import (
	"context"

	"github.com/vibeshop/vibeshop/internal/models"
)

func (r *GormRepo) GetReceipt(ctx context.Context, id uint) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := r.DB.WithContext(ctx).Preload("Items").First(&receipt, id).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *GormRepo) ListReceipts(ctx context.Context, userID uint, limit, offset int) ([]models.Receipt, error) {
	var receipts []models.Receipt
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&receipts).Error
	if err != nil {
		return nil, err
	}
	return receipts, nil
}
