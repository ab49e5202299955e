package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	salesapp "github.com/supermart/backend/internal/application/sales"
	"github.com/supermart/backend/internal/interfaces/http/dto"
)

// OrderHandler serves checkout operations
type OrderHandler struct {
	BaseHandler
	orderService *salesapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *salesapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Submit)
		orders.POST("/check-item", h.CheckItem)
		orders.POST("/price", h.Price)
	}
}

// CheckItem verifies that a product exists with enough stock for a line item
// POST /api/v1/orders/check-item
func (h *OrderHandler) CheckItem(c *gin.Context) {
	var req dto.CheckLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	if err := h.orderService.CheckLineItem(c.Request.Context(), req.ProductID, req.Quantity); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"available": true})
}

// Price computes the tax-inclusive total for a set of line items without
// recording anything
// POST /api/v1/orders/price
func (h *OrderHandler) Price(c *gin.Context) {
	var req dto.OrderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	result, err := h.orderService.PriceOrder(c.Request.Context(), req.LineItems())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.PricingResponse{Total: result.Total, Notices: result.Notices})
}

// Submit completes an order: prices it, records it, and reconciles stock
// POST /api/v1/orders
func (h *OrderHandler) Submit(c *gin.Context) {
	var req dto.OrderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	order, pricing, err := h.orderService.SubmitOrder(c.Request.Context(), req.LineItems())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.ToOrderResponse(order, pricing.Notices))
}
