package repo

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"autohub-api/internal/core/apperr"
	"autohub-api/internal/domain"
)

type CategoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) *CategoryRepo { return &CategoryRepo{db: db} }

const categoryCountSelect = "categories.*, " +
	"(SELECT COUNT(*) FROM products p WHERE p.category_id = categories.id AND p.status = 'active') AS product_count"

func (r *CategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if isDupKey(err) {
			return apperr.Conflict("slug already exists")
		}
		return errors.Wrap(err, "create category")
	}
	return nil
}

func (r *CategoryRepo) FindByID(ctx context.Context, id uint) (*domain.Category, error) {
	var c domain.Category
	err := r.db.WithContext(ctx).Select(categoryCountSelect).First(&c, "categories.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *CategoryRepo) List(ctx context.Context, featuredOnly bool) ([]domain.Category, error) {
	q := r.db.WithContext(ctx).Model(&domain.Category{}).Select(categoryCountSelect)
	if featuredOnly {
		q = q.Where("featured = ?", true)
	}
	var out []domain.Category
	if err := q.Order("name ASC").Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	return out, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		if isDupKey(err) {
			return apperr.Conflict("slug already exists")
		}
		return errors.Wrap(err, "update category")
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Category{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete category")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("category not found")
	}
	return nil
}

func (r *CategoryRepo) CountChildren(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Category{}).Where("parent_id = ?", id).Count(&n).Error
	return n, err
}

func (r *CategoryRepo) CountActiveProducts(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("category_id = ? AND status = ?", id, domain.ProductActive).Count(&n).Error
	return n, err
}
