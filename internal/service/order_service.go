package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"autohub-api/internal/core/apperr"
	"autohub-api/internal/domain"
	"autohub-api/pkg/utils"
)

const orderNumberPrefix = "AUT"

type OrderLineInput struct {
	ProductID uint    `json:"productId"`
	VariantID string  `json:"variantId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type CreateOrderInput struct {
	Items           []OrderLineInput
	Subtotal        float64
	Tax             float64
	Shipping        float64
	Discount        float64
	Total           float64
	Currency        string
	PaymentMethod   string
	BillingAddress  json.RawMessage
	ShippingAddress json.RawMessage
	Notes           string
}

type OrderService struct {
	orders domain.OrderRepository
}

func NewOrderService(orders domain.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

func (s *OrderService) Create(ctx context.Context, userID uint, in CreateOrderInput) (*domain.Order, error) {
	if len(in.Items) == 0 || len(in.BillingAddress) == 0 || in.Total <= 0 {
		return nil, apperr.Validation("required fields: items, billingAddress, total")
	}

	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}
	method := in.PaymentMethod
	if method == "" {
		method = "card"
	}
	shippingAddr := in.ShippingAddress
	if len(shippingAddr) == 0 {
		shippingAddr = in.BillingAddress
	}

	o := &domain.Order{
		OrderNumber:     NewOrderNumber(),
		UserID:          userID,
		Status:          domain.OrderPending,
		Subtotal:        in.Subtotal,
		Tax:             in.Tax,
		Shipping:        in.Shipping,
		Discount:        in.Discount,
		Total:           in.Total,
		Currency:        currency,
		PaymentStatus:   "pending",
		PaymentMethod:   method,
		BillingAddress:  string(in.BillingAddress),
		ShippingAddress: string(shippingAddr),
		Notes:           in.Notes,
		Items:           make([]domain.OrderItem, 0, len(in.Items)),
	}
	for _, line := range in.Items {
		if line.Quantity <= 0 {
			return nil, apperr.Validation("item quantity must be positive")
		}
		o.Items = append(o.Items, domain.OrderItem{
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Quantity:  line.Quantity,
			Price:     line.Price,
			Total:     round2(line.Price * float64(line.Quantity)),
		})
	}

	if err := s.orders.CreateWithItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	if orderID == 0 || status == "" {
		return apperr.Validation("required fields: orderId, status")
	}
	if !domain.ValidOrderStatus(status) {
		return apperr.Validation("unknown order status: " + status)
	}

	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return apperr.Internal("update status failed", err)
	}
	if o == nil {
		return apperr.NotFound("order not found")
	}
	if !domain.CanTransitionOrder(o.Status, status) {
		return apperr.Validation(fmt.Sprintf("cannot transition order from %s to %s", o.Status, status))
	}
	return s.orders.UpdateStatus(ctx, orderID, status)
}

func (s *OrderService) ListByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListAll(ctx)
}

func (s *OrderService) Analytics(ctx context.Context) (*domain.OrderAnalytics, error) {
	return s.orders.Analytics(ctx)
}

// NewOrderNumber generates AUT-<year>-<token>. The token derives from a
// fresh UUID rather than a random pad, and the column's unique index makes
// a collision a write error instead of a silent duplicate.
func NewOrderNumber() string {
	return fmt.Sprintf("%s-%d-%s", orderNumberPrefix, time.Now().Year(), utils.ShortToken(10))
}
