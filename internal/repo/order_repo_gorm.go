package repo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"autohub-api/internal/core/apperr"
	"autohub-api/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

// CreateWithItems is the checkout write path: order row, item rows and the
// cart clear either all land or none do.
func (r *OrderRepo) CreateWithItems(ctx context.Context, o *domain.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(o).Error; err != nil {
			if isDupKey(err) {
				return apperr.Conflict("order number already exists")
			}
			return err
		}
		return tx.Delete(&domain.CartItem{}, "user_id = ?", o.UserID).Error
	})
	return errors.Wrap(err, "create order")
}

func (r *OrderRepo) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &o, err
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return out, nil
}

func (r *OrderRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Select("orders.*, u.first_name AS customer_first_name, "+
			"u.last_name AS customer_last_name, u.email AS customer_email").
		Joins("LEFT JOIN users u ON u.id = orders.user_id").
		Order("orders.created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, errors.Wrap(err, "list all orders")
	}
	return out, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return errors.Wrap(res.Error, "update order status")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("order not found")
	}
	return nil
}

func (r *OrderRepo) Analytics(ctx context.Context) (*domain.OrderAnalytics, error) {
	db := r.db.WithContext(ctx)
	out := &domain.OrderAnalytics{}

	if err := db.Model(&domain.Order{}).Count(&out.TotalOrders).Error; err != nil {
		return nil, errors.Wrap(err, "count orders")
	}

	row := struct {
		Revenue float64
		Avg     float64
	}{}
	err := db.Model(&domain.Order{}).
		Select("COALESCE(SUM(total), 0) AS revenue, COALESCE(AVG(total), 0) AS avg").
		Where("status != ?", domain.OrderCancelled).
		Scan(&row).Error
	if err != nil {
		return nil, errors.Wrap(err, "revenue aggregate")
	}
	out.TotalRevenue = row.Revenue
	out.AvgOrderValue = row.Avg

	err = db.Model(&domain.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&out.OrdersByStatus).Error
	if err != nil {
		return nil, errors.Wrap(err, "orders by status")
	}

	since := time.Now().AddDate(-1, 0, 0)
	err = db.Model(&domain.Order{}).
		Select(monthExpr(r.db)+" AS month, COALESCE(SUM(total), 0) AS revenue").
		Where("status != ? AND created_at >= ?", domain.OrderCancelled, since).
		Group("month").
		Order("month").
		Scan(&out.MonthlyRevenue).Error
	if err != nil {
		return nil, errors.Wrap(err, "monthly revenue")
	}
	return out, nil
}

// monthExpr formats created_at as YYYY-MM in whichever dialect is connected.
func monthExpr(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "to_char(created_at, 'YYYY-MM')"
	}
	return "DATE_FORMAT(created_at, '%Y-%m')"
}
