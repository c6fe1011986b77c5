package domain

import (
	"context"
	"time"
)

// CartItem rows are unique per (user, product, variant); a repeated add
// increments Quantity instead of inserting a second row. VariantID uses ""
// for "no variant" so the composite unique index covers the variantless case.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:uniq_cart_line;not null" json:"userId"`
	ProductID uint      `gorm:"uniqueIndex:uniq_cart_line;not null" json:"productId"`
	VariantID string    `gorm:"uniqueIndex:uniq_cart_line;size:64;not null;default:''" json:"variantId,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"` // unit price at time of add
	CreatedAt time.Time `json:"addedAt"`
	UpdatedAt time.Time `json:"-"`
}

func (CartItem) TableName() string { return "cart_items" }

// CartLine is a cart row joined to its product for display.
type CartLine struct {
	CartItem
	ProductName  string `json:"-"`
	ProductSKU   string `json:"-"`
	ProductBrand string `json:"-"`
	ImageURL     string `json:"-"`
}

type CartRepository interface {
	// Upsert inserts the line or increments quantity on the existing
	// (user, product, variant) row; safe under concurrent adds.
	Upsert(ctx context.Context, item *CartItem) error
	Lines(ctx context.Context, userID uint) ([]CartLine, error)
	FindLine(ctx context.Context, userID, itemID uint) (*CartItem, error)
	SetQuantity(ctx context.Context, userID, itemID uint, quantity int) error
	Remove(ctx context.Context, userID, itemID uint) error
	Clear(ctx context.Context, userID uint) error
}
