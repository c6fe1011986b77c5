package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autohub-api/internal/core/apperr"
	"autohub-api/internal/domain"
)

func seedActiveProduct(products *fakeProductRepo, price float64) *domain.Product {
	p := &domain.Product{Name: "Oil Filter", SKU: "OF-100", Price: price, Status: domain.ProductActive}
	_ = products.Create(context.Background(), p)
	return p
}

func TestCartService_AddItem_UsesServerPrice(t *testing.T) {
	products := &fakeProductRepo{}
	p := seedActiveProduct(products, 24.99)
	carts := &fakeCartRepo{}
	svc := NewCartService(carts, products)

	item, err := svc.AddItem(context.Background(), 1, p.ID, "", 2)
	require.NoError(t, err)
	assert.Equal(t, 24.99, item.Price)
	assert.Equal(t, 2, item.Quantity)
}

func TestCartService_AddItem_DefaultsQuantityToOne(t *testing.T) {
	products := &fakeProductRepo{}
	p := seedActiveProduct(products, 10)
	svc := NewCartService(&fakeCartRepo{}, products)

	item, err := svc.AddItem(context.Background(), 1, p.ID, "", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
}

func TestCartService_AddItem_RepeatedAddIncrements(t *testing.T) {
	products := &fakeProductRepo{}
	p := seedActiveProduct(products, 10)
	carts := &fakeCartRepo{}
	svc := NewCartService(carts, products)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, p.ID, "", 2)
	require.NoError(t, err)
	item, err := svc.AddItem(ctx, 1, p.ID, "", 3)
	require.NoError(t, err)

	assert.Equal(t, 5, item.Quantity)
	assert.Len(t, carts.items, 1)
}

func TestCartService_AddItem_VariantsAreSeparateLines(t *testing.T) {
	products := &fakeProductRepo{}
	p := seedActiveProduct(products, 10)
	carts := &fakeCartRepo{}
	svc := NewCartService(carts, products)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, p.ID, "red", 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, 1, p.ID, "blue", 1)
	require.NoError(t, err)

	assert.Len(t, carts.items, 2)
}

func TestCartService_AddItem_InactiveProductRejected(t *testing.T) {
	products := &fakeProductRepo{}
	p := &domain.Product{Name: "Old Part", SKU: "OP-1", Price: 5, Status: domain.ProductInactive}
	_ = products.Create(context.Background(), p)
	svc := NewCartService(&fakeCartRepo{}, products)

	_, err := svc.AddItem(context.Background(), 1, p.ID, "", 1)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, http.StatusNotFound))
}

func TestCartService_GetCart_TotalsBelowFreeShipping(t *testing.T) {
	products := &fakeProductRepo{}
	p := seedActiveProduct(products, 25)
	carts := &fakeCartRepo{}
	svc := NewCartService(carts, products)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, p.ID, "", 2)
	require.NoError(t, err)

	view, err := svc.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 50.0, view.Subtotal)
	assert.Equal(t, 4.0, view.Tax)
	assert.Equal(t, 15.0, view.Shipping)
	assert.Equal(t, 69.0, view.Total)
	assert.Equal(t, "USD", view.Currency)
}

func TestCartService_GetCart_FreeShippingAboveThreshold(t *testing.T) {
	products := &fakeProductRepo{}
	p := seedActiveProduct(products, 60)
	carts := &fakeCartRepo{}
	svc := NewCartService(carts, products)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, p.ID, "", 2)
	require.NoError(t, err)

	view, err := svc.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 120.0, view.Subtotal)
	assert.Equal(t, 9.6, view.Tax)
	assert.Equal(t, 0.0, view.Shipping)
	assert.Equal(t, 129.6, view.Total)
}

func TestCartService_GetCart_EmptyStillChargesShipping(t *testing.T) {
	svc := NewCartService(&fakeCartRepo{}, &fakeProductRepo{})

	view, err := svc.GetCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0.0, view.Subtotal)
	assert.Equal(t, 15.0, view.Shipping)
	assert.Equal(t, 15.0, view.Total)
}

func TestCartService_UpdateQuantity_ZeroRemovesLine(t *testing.T) {
	products := &fakeProductRepo{}
	p := seedActiveProduct(products, 10)
	carts := &fakeCartRepo{}
	svc := NewCartService(carts, products)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, 1, p.ID, "", 2)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateQuantity(ctx, 1, item.ID, 0))
	assert.Empty(t, carts.items)

	item, err = svc.AddItem(ctx, 1, p.ID, "", 2)
	require.NoError(t, err)
	require.NoError(t, svc.UpdateQuantity(ctx, 1, item.ID, -3))
	assert.Empty(t, carts.items)
}

func TestCartService_UpdateQuantity_SetsValue(t *testing.T) {
	products := &fakeProductRepo{}
	p := seedActiveProduct(products, 10)
	carts := &fakeCartRepo{}
	svc := NewCartService(carts, products)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, 1, p.ID, "", 2)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateQuantity(ctx, 1, item.ID, 7))
	assert.Equal(t, 7, carts.items[0].Quantity)
}

func TestCartService_ClearCart_OnlyOwnItems(t *testing.T) {
	products := &fakeProductRepo{}
	p := seedActiveProduct(products, 10)
	carts := &fakeCartRepo{}
	svc := NewCartService(carts, products)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, p.ID, "", 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, 2, p.ID, "", 1)
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx, 1))
	require.Len(t, carts.items, 1)
	assert.Equal(t, uint(2), carts.items[0].UserID)
}
