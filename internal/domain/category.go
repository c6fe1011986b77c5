package domain

import (
	"context"
	"time"
)

type Category struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:128;not null" json:"name"`
	Slug           string    `gorm:"uniqueIndex;size:128;not null" json:"slug"`
	Description    string    `gorm:"type:text" json:"description"`
	Image          string    `gorm:"size:255" json:"image"`
	ParentID       *uint     `gorm:"index" json:"parentId"`
	Featured       bool      `gorm:"not null;default:false" json:"featured"`
	SEOTitle       string    `gorm:"size:255" json:"seoTitle"`
	SEODescription string    `gorm:"size:255" json:"seoDescription"`
	SEOKeywords    string    `gorm:"size:255" json:"seoKeywords"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	// Correlated count over active products, filled on reads only.
	ProductCount int64 `gorm:"->;-:migration" json:"productCount"`
}

func (Category) TableName() string { return "categories" }

type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id uint) (*Category, error)
	// List returns all categories name-ascending with ProductCount filled.
	List(ctx context.Context, featuredOnly bool) ([]Category, error)
	Update(ctx context.Context, c *Category) error
	// Delete fails with Conflict while child categories or active products remain.
	Delete(ctx context.Context, id uint) error
	CountChildren(ctx context.Context, id uint) (int64, error)
	CountActiveProducts(ctx context.Context, id uint) (int64, error)
}
