package repo

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"autohub-api/internal/core/apperr"
	"autohub-api/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	// Images and specifications ride along via the association.
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isDupKey(err) {
			return apperr.Conflict("SKU already exists")
		}
		return errors.Wrap(err, "create product")
	}
	return nil
}

func (r *ProductRepo) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).
		Select("products.*, c.name AS category_name").
		Joins("LEFT JOIN categories c ON c.id = products.category_id").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Specifications").
		First(&p, "products.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *ProductRepo) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	q := r.db.WithContext(ctx).Model(&domain.Product{}).
		Select("products.*, c.name AS category_name").
		Joins("LEFT JOIN categories c ON c.id = products.category_id").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Specifications")
	if !f.IncludeAll {
		q = q.Where("products.status = ?", domain.ProductActive)
	}
	if f.FeaturedOnly {
		q = q.Where("products.featured = ?", true)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var out []domain.Product
	if err := q.Order("products.created_at DESC").Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return out, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Images", "Specifications").Save(p).Error; err != nil {
			if isDupKey(err) {
				return apperr.Conflict("SKU already exists")
			}
			return err
		}
		// Replace nested rows wholesale; ordering lives in Position.
		if err := tx.Delete(&domain.ProductImage{}, "product_id = ?", p.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.ProductSpecification{}, "product_id = ?", p.ID).Error; err != nil {
			return err
		}
		for i := range p.Images {
			p.Images[i].ID = 0
			p.Images[i].ProductID = p.ID
		}
		for i := range p.Specifications {
			p.Specifications[i].ID = 0
			p.Specifications[i].ProductID = p.ID
		}
		if len(p.Images) > 0 {
			if err := tx.Create(&p.Images).Error; err != nil {
				return err
			}
		}
		if len(p.Specifications) > 0 {
			if err := tx.Create(&p.Specifications).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return errors.Wrap(err, "update product")
}

// Delete removes the product and its dependent rows explicitly; the schema
// does not rely on database-level cascades.
func (r *ProductRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.ProductImage{}, "product_id = ?", id).Error; err != nil {
			return errors.Wrap(err, "delete product images")
		}
		if err := tx.Delete(&domain.ProductSpecification{}, "product_id = ?", id).Error; err != nil {
			return errors.Wrap(err, "delete product specifications")
		}
		if err := tx.Delete(&domain.CartItem{}, "product_id = ?", id).Error; err != nil {
			return errors.Wrap(err, "delete cart rows")
		}
		res := tx.Delete(&domain.Product{}, "id = ?", id)
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete product")
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("product not found")
		}
		return nil
	})
}

func (r *ProductRepo) SKUExists(ctx context.Context, sku string, excludeID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(&domain.Product{}).Where("sku = ?", sku)
	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
