package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"autohub-api/internal/domain"
	"autohub-api/internal/service"
	mdw "autohub-api/internal/transport/http/middleware"
	resp "autohub-api/internal/transport/http/response"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderReq struct {
	Items           []service.OrderLineInput `json:"items" binding:"required,min=1"`
	Subtotal        float64                  `json:"subtotal"`
	Tax             float64                  `json:"tax"`
	Shipping        float64                  `json:"shipping"`
	Discount        float64                  `json:"discount"`
	Total           float64                  `json:"total" binding:"required,gt=0"`
	Currency        string                   `json:"currency"`
	PaymentMethod   string                   `json:"paymentMethod"`
	BillingAddress  json.RawMessage          `json:"billingAddress" binding:"required"`
	ShippingAddress json.RawMessage          `json:"shippingAddress"`
	Notes           string                   `json:"notes"`
}

type updateStatusReq struct {
	OrderID uint   `json:"orderId" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

func orderTotals(o *domain.Order) gin.H {
	return gin.H{
		"subtotal": o.Subtotal,
		"tax":      o.Tax,
		"shipping": o.Shipping,
		"discount": o.Discount,
		"total":    o.Total,
		"currency": o.Currency,
	}
}

func toOrderView(o *domain.Order, withCustomer bool) gin.H {
	v := gin.H{
		"id":            o.ID,
		"orderNumber":   o.OrderNumber,
		"status":        o.Status,
		"paymentStatus": o.PaymentStatus,
		"paymentMethod": o.PaymentMethod,
		"totals":        orderTotals(o),
		"items":         o.Items,
		"createdAt":     o.CreatedAt,
		"updatedAt":     o.UpdatedAt,
	}
	if withCustomer {
		v["userId"] = o.UserID
		v["customer"] = gin.H{
			"firstName": o.CustomerFirstName,
			"lastName":  o.CustomerLastName,
			"email":     o.CustomerEmail,
		}
	} else {
		v["billingAddress"] = json.RawMessage(orBrace(o.BillingAddress))
		v["shippingAddress"] = json.RawMessage(orBrace(o.ShippingAddress))
	}
	return v
}

// orBrace keeps address blobs valid JSON even when a legacy row is empty.
func orBrace(s string) string {
	if s == "" {
		return "{}"
	}
	return s
}

// Get serves three views from one path: the caller's own orders, the admin
// listing (?admin=true) and the analytics aggregate (?analytics=true).
func (h *OrderHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("analytics") == "true" || c.Query("admin") == "true" {
		if c.GetString(mdw.KeyRole) != "admin" {
			resp.Fail(c, http.StatusForbidden, "forbidden")
			return
		}
		if c.Query("analytics") == "true" {
			a, err := h.orders.Analytics(ctx)
			if err != nil {
				resp.Err(c, err)
				return
			}
			resp.OK(c, a)
			return
		}
		orders, err := h.orders.ListAll(ctx)
		if err != nil {
			resp.Err(c, err)
			return
		}
		views := make([]gin.H, 0, len(orders))
		for i := range orders {
			views = append(views, toOrderView(&orders[i], true))
		}
		resp.OK(c, views)
		return
	}

	uid, ok := mdw.UserID(c)
	if !ok {
		resp.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	orders, err := h.orders.ListByUser(ctx, uid)
	if err != nil {
		resp.Err(c, err)
		return
	}
	views := make([]gin.H, 0, len(orders))
	for i := range orders {
		views = append(views, toOrderView(&orders[i], false))
	}
	resp.OK(c, views)
}

func (h *OrderHandler) Create(c *gin.Context) {
	uid, ok := mdw.UserID(c)
	if !ok {
		resp.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, "required fields: items, billingAddress, total")
		return
	}
	o, err := h.orders.Create(c.Request.Context(), uid, service.CreateOrderInput{
		Items:           req.Items,
		Subtotal:        req.Subtotal,
		Tax:             req.Tax,
		Shipping:        req.Shipping,
		Discount:        req.Discount,
		Total:           req.Total,
		Currency:        req.Currency,
		PaymentMethod:   req.PaymentMethod,
		BillingAddress:  req.BillingAddress,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	})
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.Created(c, gin.H{"orderId": o.ID, "orderNumber": o.OrderNumber}, "order created successfully")
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	if c.GetString(mdw.KeyRole) != "admin" {
		resp.Fail(c, http.StatusForbidden, "forbidden")
		return
	}
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, "required fields: orderId, status")
		return
	}
	if err := h.orders.UpdateStatus(c.Request.Context(), req.OrderID, req.Status); err != nil {
		resp.Err(c, err)
		return
	}
	resp.Message(c, "order status updated")
}
