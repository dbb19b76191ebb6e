package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vibeshop/vibeshop/internal/models"
)

// CartLineView is a cart line joined with the live catalog row.
type CartLineView struct {
	CartLineID uint    `json:"cart_line_id"`
	ProductID  uint    `json:"product_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   uint    `json:"quantity"`
}

// UpsertLine inserts or replaces the quantity for (userID, productID) as a
// single conditional write, so concurrent upserts on the same key cannot
// create a duplicate line.
func (r *GormRepo) UpsertLine(ctx context.Context, userID, productID, quantity uint) (*models.CartLine, error) {
	line := models.CartLine{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	return &line, r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
		}).Create(&line).Error; err != nil {
			return err
		}
		// the conflict path does not fill the primary key
		return tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&line).Error
	})
}

// DeleteLineByProduct removes the (userID, productID) line. Deleting an
// absent line is a no-op.
func (r *GormRepo) DeleteLineByProduct(ctx context.Context, userID, productID uint) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartLine{}).Error
}

func (r *GormRepo) ListLines(ctx context.Context, userID uint) ([]CartLineView, error) {
	views := make([]CartLineView, 0)
	err := r.DB.WithContext(ctx).
		Table("cart_lines").
		Select("cart_lines.id AS cart_line_id, products.id AS product_id, products.name, products.price, cart_lines.quantity").
		Joins("JOIN products ON products.id = cart_lines.product_id").
		Where("cart_lines.user_id = ?", userID).
		Order("cart_lines.id ASC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

// RemoveLine deletes the line only if it belongs to userID. A stale or
// foreign id is a no-op, never an error.
func (r *GormRepo) RemoveLine(ctx context.Context, userID, lineID uint) error {
	return r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", lineID, userID).
		Delete(&models.CartLine{}).Error
}
