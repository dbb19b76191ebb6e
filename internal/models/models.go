package models

import (
	"time"
)

type Product struct {
	ID       uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name     string  `gorm:"not null"                  json:"name"`
	Price    float64 `gorm:"not null;check:price>=0"  json:"price"`
	ImageRef string  `gorm:"column:img"               json:"img"`
}

// CartLine is the only mutable pre-checkout state. There is at most one
// line per (user, product); upserts replace the quantity in place.
type CartLine struct {
	ID        uint `gorm:"primaryKey"                            json:"id"`
	UserID    uint `gorm:"uniqueIndex:idx_user_product;not null" json:"user_id"`
	ProductID uint `gorm:"uniqueIndex:idx_user_product;not null" json:"product_id"`
	Quantity  uint `gorm:"not null;check:quantity>0"             json:"quantity"`
}

// Receipt and ReceiptItem are append-only. Items carry a frozen copy of the
// product name and price observed at checkout, so later catalog changes
// never alter a past receipt.
type Receipt struct {
	ID            uint          `gorm:"primaryKey"           json:"id"`
	UserID        uint          `gorm:"index;not null"       json:"user_id"`
	Total         float64       `gorm:"not null"             json:"total"`
	CustomerName  string        `gorm:"not null"             json:"name"`
	CustomerEmail string        `gorm:"not null"             json:"email"`
	CreatedAt     time.Time     `gorm:"not null"             json:"created_at"`
	Items         []ReceiptItem `gorm:"foreignKey:ReceiptID" json:"items,omitempty"`
}

type ReceiptItem struct {
	ID        uint    `gorm:"primaryKey"     json:"id"`
	ReceiptID uint    `gorm:"index;not null" json:"receipt_id"`
	ProductID uint    `gorm:"not null"       json:"product_id"`
	Name      string  `gorm:"not null"       json:"name"`
	Price     float64 `gorm:"not null"       json:"price"`
	Quantity  uint    `gorm:"not null"       json:"quantity"`
}
