package domain

import (
	"context"
	"time"
)

// Order statuses.
const (
	OrderPending    = "pending"
	OrderConfirmed  = "confirmed"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
	OrderRefunded   = "refunded"
)

// orderTransitions is the allowed-transition table. Cancelled is reachable
// from any pre-delivered state; refunded only from delivered or cancelled.
var orderTransitions = map[string][]string{
	OrderPending:    {OrderConfirmed, OrderCancelled},
	OrderConfirmed:  {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered, OrderCancelled},
	OrderDelivered:  {OrderRefunded},
	OrderCancelled:  {OrderRefunded},
	OrderRefunded:   {},
}

func ValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	OrderNumber     string    `gorm:"uniqueIndex;size:32;not null" json:"orderNumber"`
	UserID          uint      `gorm:"index;not null" json:"userId"`
	Status          string    `gorm:"size:16;not null;default:pending" json:"status"`
	Subtotal        float64   `gorm:"not null" json:"subtotal"`
	Tax             float64   `gorm:"not null" json:"tax"`
	Shipping        float64   `gorm:"not null" json:"shipping"`
	Discount        float64   `gorm:"not null;default:0" json:"discount"`
	Total           float64   `gorm:"not null" json:"total"`
	Currency        string    `gorm:"size:8;not null;default:USD" json:"currency"`
	PaymentStatus   string    `gorm:"size:16;not null;default:pending" json:"paymentStatus"`
	PaymentMethod   string    `gorm:"size:32;not null;default:card" json:"paymentMethod"`
	BillingAddress  string    `gorm:"type:text" json:"-"` // JSON blob
	ShippingAddress string    `gorm:"type:text" json:"-"` // JSON blob
	Notes           string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`

	// Customer fields joined for the admin listing, reads only.
	CustomerFirstName string `gorm:"->;-:migration" json:"-"`
	CustomerLastName  string `gorm:"->;-:migration" json:"-"`
	CustomerEmail     string `gorm:"->;-:migration" json:"-"`
}

func (Order) TableName() string { return "orders" }

// OrderItem snapshots unit price at purchase time, decoupled from the live
// product price.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index;not null" json:"-"`
	ProductID uint    `gorm:"index;not null" json:"productId"`
	VariantID string  `gorm:"size:64;not null;default:''" json:"variantId,omitempty"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
	Total     float64 `gorm:"not null" json:"total"`
}

func (OrderItem) TableName() string { return "order_items" }

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type MonthRevenue struct {
	Month   string  `json:"month"` // YYYY-MM
	Revenue float64 `json:"revenue"`
}

type OrderAnalytics struct {
	TotalOrders    int64          `json:"totalOrders"`
	TotalRevenue   float64        `json:"totalRevenue"`
	AvgOrderValue  float64        `json:"avgOrderValue"`
	OrdersByStatus []StatusCount  `json:"ordersByStatus"`
	MonthlyRevenue []MonthRevenue `json:"monthlyRevenue"`
}

type OrderRepository interface {
	// CreateWithItems persists the order and its items and clears the
	// user's cart inside a single transaction.
	CreateWithItems(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uint) (*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]Order, error)
	// ListAll joins customer name/email for the admin view.
	ListAll(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Analytics(ctx context.Context) (*OrderAnalytics, error)
}
