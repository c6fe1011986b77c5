package repo

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"autohub-api/internal/core/apperr"
	"autohub-api/internal/domain"
)

type CartRepo struct{ db *gorm.DB }

func NewCartRepo(db *gorm.DB) *CartRepo { return &CartRepo{db: db} }

// Upsert locks the matching line inside a transaction so two tabs adding the
// same product cannot race into duplicate rows; the unique index backstops
// the insert path.
func (r *CartRepo) Upsert(ctx context.Context, item *domain.CartItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.CartItem
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND product_id = ? AND variant_id = ?",
				item.UserID, item.ProductID, item.VariantID).
			First(&existing).Error
		switch {
		case err == nil:
			existing.Quantity += item.Quantity
			existing.Price = item.Price
			if err := tx.Save(&existing).Error; err != nil {
				return errors.Wrap(err, "increment cart line")
			}
			*item = existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(item).Error; err != nil {
				if isDupKey(err) {
					// lost the insert race; fold into the winner's row
					return tx.Model(&domain.CartItem{}).
						Where("user_id = ? AND product_id = ? AND variant_id = ?",
							item.UserID, item.ProductID, item.VariantID).
						Update("quantity", gorm.Expr("quantity + ?", item.Quantity)).Error
				}
				return errors.Wrap(err, "insert cart line")
			}
			return nil
		default:
			return errors.Wrap(err, "find cart line")
		}
	})
}

func (r *CartRepo) Lines(ctx context.Context, userID uint) ([]domain.CartLine, error) {
	var out []domain.CartLine
	err := r.db.WithContext(ctx).Model(&domain.CartItem{}).
		Select("cart_items.*, p.name AS product_name, p.sku AS product_sku, "+
			"p.brand AS product_brand, pi.url AS image_url").
		Joins("LEFT JOIN products p ON p.id = cart_items.product_id").
		Joins("LEFT JOIN product_images pi ON pi.product_id = p.id AND pi.is_primary = ?", true).
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.created_at DESC").
		Scan(&out).Error
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}
	return out, nil
}

func (r *CartRepo) FindLine(ctx context.Context, userID, itemID uint) (*domain.CartItem, error) {
	var item domain.CartItem
	err := r.db.WithContext(ctx).First(&item, "id = ? AND user_id = ?", itemID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *CartRepo) SetQuantity(ctx context.Context, userID, itemID uint, quantity int) error {
	res := r.db.WithContext(ctx).Model(&domain.CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("quantity", quantity)
	if res.Error != nil {
		return errors.Wrap(res.Error, "update cart quantity")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("cart item not found")
	}
	return nil
}

func (r *CartRepo) Remove(ctx context.Context, userID, itemID uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.CartItem{}, "id = ? AND user_id = ?", itemID, userID)
	if res.Error != nil {
		return errors.Wrap(res.Error, "remove cart item")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("cart item not found")
	}
	return nil
}

func (r *CartRepo) Clear(ctx context.Context, userID uint) error {
	return errors.Wrap(
		r.db.WithContext(ctx).Delete(&domain.CartItem{}, "user_id = ?", userID).Error,
		"clear cart")
}
