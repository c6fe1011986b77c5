package service

import (
	"context"
	"math"

	"autohub-api/internal/core/apperr"
	"autohub-api/internal/domain"
)

// Cart pricing rules: 8% tax on the subtotal, flat shipping waived above the
// free-shipping threshold. Derived on every read, never persisted.
const (
	taxRate           = 0.08
	shippingFlat      = 15.0
	freeShippingAbove = 100.0
)

type CartItemView struct {
	ID        uint        `json:"id"`
	ProductID uint        `json:"productId"`
	VariantID string      `json:"variantId,omitempty"`
	Quantity  int         `json:"quantity"`
	Price     float64     `json:"price"`
	Product   CartProduct `json:"product"`
	AddedAt   string      `json:"addedAt"`
}

type CartProduct struct {
	ID     uint        `json:"id"`
	Name   string      `json:"name"`
	SKU    string      `json:"sku"`
	Brand  string      `json:"brand"`
	Images []CartImage `json:"images"`
}

type CartImage struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type CartView struct {
	Items    []CartItemView `json:"items"`
	Subtotal float64        `json:"subtotal"`
	Tax      float64        `json:"tax"`
	Shipping float64        `json:"shipping"`
	Discount float64        `json:"discount"`
	Total    float64        `json:"total"`
	Currency string         `json:"currency"`
}

type CartService struct {
	carts    domain.CartRepository
	products domain.ProductRepository
}

func NewCartService(carts domain.CartRepository, products domain.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// AddItem re-derives the unit price from the live product record; the
// client-supplied price is ignored so it cannot be tampered with.
func (s *CartService) AddItem(ctx context.Context, userID, productID uint, variantID string, quantity int) (*domain.CartItem, error) {
	if productID == 0 {
		return nil, apperr.Validation("productId is required")
	}
	if quantity <= 0 {
		quantity = 1
	}

	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, apperr.Internal("add to cart failed", err)
	}
	if p == nil || p.Status != domain.ProductActive {
		return nil, apperr.NotFound("product not found")
	}

	item := &domain.CartItem{
		UserID:    userID,
		ProductID: productID,
		VariantID: variantID,
		Quantity:  quantity,
		Price:     p.Price,
	}
	if err := s.carts.Upsert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartService) GetCart(ctx context.Context, userID uint) (*CartView, error) {
	lines, err := s.carts.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: make([]CartItemView, 0, len(lines)), Currency: "USD"}
	var subtotal float64
	for _, l := range lines {
		subtotal += l.Price * float64(l.Quantity)
		item := CartItemView{
			ID:        l.ID,
			ProductID: l.ProductID,
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
			Price:     l.Price,
			Product: CartProduct{
				ID:    l.ProductID,
				Name:  l.ProductName,
				SKU:   l.ProductSKU,
				Brand: l.ProductBrand,
			},
			AddedAt: l.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if l.ImageURL != "" {
			item.Product.Images = []CartImage{{URL: l.ImageURL, Alt: l.ProductName}}
		}
		view.Items = append(view.Items, item)
	}

	view.Subtotal = round2(subtotal)
	view.Tax = round2(subtotal * taxRate)
	if subtotal > freeShippingAbove {
		view.Shipping = 0
	} else {
		view.Shipping = shippingFlat
	}
	view.Total = round2(view.Subtotal + view.Tax + view.Shipping - view.Discount)
	return view, nil
}

// UpdateQuantity routes quantities at or below zero to deletion; a zero or
// negative quantity never persists.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) error {
	if itemID == 0 {
		return apperr.Validation("id is required")
	}
	if quantity <= 0 {
		return s.carts.Remove(ctx, userID, itemID)
	}
	return s.carts.SetQuantity(ctx, userID, itemID, quantity)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) error {
	if itemID == 0 {
		return apperr.Validation("id is required")
	}
	return s.carts.Remove(ctx, userID, itemID)
}

func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	return s.carts.Clear(ctx, userID)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
