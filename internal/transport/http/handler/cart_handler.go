package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"autohub-api/internal/service"
	mdw "autohub-api/internal/transport/http/middleware"
	resp "autohub-api/internal/transport/http/response"
)

type CartHandler struct {
	cart *service.CartService
}

func NewCartHandler(cart *service.CartService) *CartHandler { return &CartHandler{cart: cart} }

type addItemReq struct {
	ProductID uint   `json:"productId" binding:"required"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

type updateQtyReq struct {
	ID       uint `json:"id" binding:"required"`
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *CartHandler) Get(c *gin.Context) {
	uid, ok := mdw.UserID(c)
	if !ok {
		resp.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	view, err := h.cart.GetCart(c.Request.Context(), uid)
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, gin.H{
		"id":       "cart-" + strconv.FormatUint(uint64(uid), 10),
		"items":    view.Items,
		"subtotal": view.Subtotal,
		"tax":      view.Tax,
		"shipping": view.Shipping,
		"discount": view.Discount,
		"total":    view.Total,
		"currency": view.Currency,
	})
}

func (h *CartHandler) Add(c *gin.Context) {
	uid, ok := mdw.UserID(c)
	if !ok {
		resp.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, "productId is required")
		return
	}
	if _, err := h.cart.AddItem(c.Request.Context(), uid, req.ProductID, req.VariantID, req.Quantity); err != nil {
		resp.Err(c, err)
		return
	}
	resp.Created(c, nil, "item added to cart")
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	uid, ok := mdw.UserID(c)
	if !ok {
		resp.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req updateQtyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, "required fields: id, quantity")
		return
	}
	if err := h.cart.UpdateQuantity(c.Request.Context(), uid, req.ID, *req.Quantity); err != nil {
		resp.Err(c, err)
		return
	}
	resp.Message(c, "cart item updated")
}

func (h *CartHandler) Delete(c *gin.Context) {
	uid, ok := mdw.UserID(c)
	if !ok {
		resp.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	ctx := c.Request.Context()

	if c.Query("clear") == "true" {
		if err := h.cart.ClearCart(ctx, uid); err != nil {
			resp.Err(c, err)
			return
		}
		resp.Message(c, "cart cleared")
		return
	}

	id, ok := queryID(c)
	if !ok {
		return
	}
	if err := h.cart.RemoveItem(ctx, uid, id); err != nil {
		resp.Err(c, err)
		return
	}
	resp.Message(c, "item removed from cart")
}
