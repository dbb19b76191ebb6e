package seed

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/vibeshop/vibeshop/internal/models"
)

// Products fills an empty catalog with the demo products. A non-empty
// catalog is left untouched.
func Products(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counting products: %w", err)
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{Name: "Classic Vibe T-Shirt", Price: 19.99, ImageRef: "https://plus.unsplash.com/premium_photo-1690349404224-53f94f20df8f?auto=format&fit=crop&w=500&q=80"},
		{Name: "Urban Backpack", Price: 49.99, ImageRef: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?auto=format&fit=crop&w=500&q=80"},
		{Name: "Wireless Earbuds", Price: 79.99, ImageRef: "https://images.unsplash.com/photo-1632200004922-bc18602c79fc?auto=format&fit=crop&w=500&q=80"},
		{Name: "Desk Lamp", Price: 24.5, ImageRef: "https://plus.unsplash.com/premium_photo-1685287731216-a7a0fae7a41a?auto=format&fit=crop&w=500&q=80"},
		{Name: "Vibe Mug", Price: 9.99, ImageRef: "https://plus.unsplash.com/premium_photo-1719289799337-9cb436447965?auto=format&fit=crop&w=500&q=80"},
		{Name: "Sticker Pack", Price: 4.99, ImageRef: "https://images.unsplash.com/photo-1633533452206-8ab246b00e30?auto=format&fit=crop&w=500&q=80"},
	}

	if err := db.WithContext(ctx).Create(&products).Error; err != nil {
		return fmt.Errorf("seeding products: %w", err)
	}
	return nil
}
