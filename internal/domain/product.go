package domain

import (
	"context"
	"time"
)

// Product lifecycle states.
const (
	ProductActive       = "active"
	ProductInactive     = "inactive"
	ProductDiscontinued = "discontinued"
)

// Inventory states.
const (
	InventoryInStock    = "in_stock"
	InventoryLowStock   = "low_stock"
	InventoryOutOfStock = "out_of_stock"
)

type Product struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"size:255;not null" json:"name"`
	Description       string    `gorm:"type:text" json:"description"`
	ShortDescription  string    `gorm:"size:512" json:"shortDescription"`
	SKU               string    `gorm:"uniqueIndex;size:64;not null" json:"sku"`
	Brand             string    `gorm:"size:128" json:"brand"`
	CategoryID        *uint     `gorm:"index" json:"categoryId"`
	Price             float64   `gorm:"not null" json:"price"`
	CompareAtPrice    *float64  `json:"compareAtPrice"`
	Featured          bool      `gorm:"not null;default:false" json:"featured"`
	Status            string    `gorm:"size:16;not null;default:active" json:"status"`
	InventoryQuantity int       `gorm:"not null;default:0" json:"inventoryQuantity"`
	InventoryStatus   string    `gorm:"size:16;not null;default:in_stock" json:"inventoryStatus"`
	LowStockThreshold int       `gorm:"not null;default:5" json:"lowStockThreshold"`
	SEOTitle          string    `gorm:"size:255" json:"seoTitle"`
	SEODescription    string    `gorm:"size:255" json:"seoDescription"`
	SEOKeywords       string    `gorm:"size:255" json:"seoKeywords"`
	SEOSlug           string    `gorm:"size:128" json:"seoSlug"`
	Tags              string    `gorm:"size:512" json:"tags"` // comma-joined
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`

	Images         []ProductImage         `gorm:"foreignKey:ProductID" json:"images"`
	Specifications []ProductSpecification `gorm:"foreignKey:ProductID" json:"specifications"`

	// Joined category name, reads only.
	CategoryName string `gorm:"->;-:migration" json:"categoryName,omitempty"`
}

func (Product) TableName() string { return "products" }

type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index;not null" json:"-"`
	URL       string `gorm:"size:512;not null" json:"url"`
	Alt       string `gorm:"size:255" json:"alt"`
	Position  int    `gorm:"not null;default:0" json:"position"`
	IsPrimary bool   `gorm:"not null;default:false" json:"isPrimary"`
}

func (ProductImage) TableName() string { return "product_images" }

type ProductSpecification struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	ProductID uint   `gorm:"index;not null" json:"-"`
	Name      string `gorm:"size:128;not null" json:"name"`
	Value     string `gorm:"size:255" json:"value"`
	SpecGroup string `gorm:"size:64" json:"group"`
}

func (ProductSpecification) TableName() string { return "product_specifications" }

type ProductFilter struct {
	FeaturedOnly bool
	// IncludeAll lifts the active-only default (admin listings).
	IncludeAll bool
	Limit      int
}

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context, f ProductFilter) ([]Product, error)
	Update(ctx context.Context, p *Product) error
	// Delete removes the product together with its images, specifications
	// and cart rows in one transaction.
	Delete(ctx context.Context, id uint) error
	SKUExists(ctx context.Context, sku string, excludeID uint) (bool, error)
}
