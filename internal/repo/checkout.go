package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vibeshop/vibeshop/internal/models"
)

// ErrNoLines reports a checkout attempted against an empty cart.
var ErrNoLines = errors.New("cart has no lines")

// Checkout converts the user's cart into a receipt inside one transaction:
// snapshot lines with live prices, create the receipt and its frozen items,
// clear the cart. Any failure rolls the whole unit back, so a receipt
// without a cleared cart (or the reverse) can never be observed.
//
// On postgres the user's cart rows are locked FOR UPDATE for the duration
// of the transaction; the embedded sqlite mode serializes writers on the
// database itself and on the caller's per-user lock.
func (r *GormRepo) Checkout(ctx context.Context, userID uint, customerName, customerEmail string) (*models.Receipt, error) {
	var receipt models.Receipt

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.CartLine{})
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var lines []models.CartLine
		if err := q.Where("user_id = ?", userID).Order("id ASC").Find(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrNoLines
		}

		var total float64
		items := make([]models.ReceiptItem, 0, len(lines))
		for _, line := range lines {
			var p models.Product
			if err := tx.First(&p, line.ProductID).Error; err != nil {
				return err
			}
			items = append(items, models.ReceiptItem{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price,
				Quantity:  line.Quantity,
			})
			total += p.Price * float64(line.Quantity)
		}

		receipt = models.Receipt{
			UserID:        userID,
			Total:         total,
			CustomerName:  customerName,
			CustomerEmail: customerEmail,
			CreatedAt:     time.Now().UTC(),
			Items:         items,
		}
		if err := tx.Create(&receipt).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartLine{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}
