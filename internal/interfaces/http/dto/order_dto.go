package dto

import (
	"github.com/shopspring/decimal"

	"github.com/supermart/backend/internal/domain/sales"
)

// CheckLineItemRequest asks whether a product can cover a requested quantity
type CheckLineItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// OrderItemsRequest carries the line items of an order keyed by product identifier
type OrderItemsRequest struct {
	Items map[string]int `json:"items" binding:"required"`
}

// LineItems converts the request payload to the domain representation
func (r *OrderItemsRequest) LineItems() sales.LineItems {
	return sales.LineItems(r.Items)
}

// PricingResponse is the result of pricing a set of line items
type PricingResponse struct {
	Total   decimal.Decimal `json:"total"`
	Notices []string        `json:"notices,omitempty"`
}

// OrderResponse is the API representation of a completed order
type OrderResponse struct {
	ID        string          `json:"id"`
	Items     map[string]int  `json:"order_items"`
	Total     decimal.Decimal `json:"total"`
	OrderTime string          `json:"order_time"`
	Notices   []string        `json:"notices,omitempty"`
}

// ToOrderResponse converts an order entity to its API representation
func ToOrderResponse(order *sales.Order, notices []string) OrderResponse {
	return OrderResponse{
		ID:        order.ID.String(),
		Items:     order.Items,
		Total:     order.Total,
		OrderTime: order.OrderTime,
		Notices:   notices,
	}
}
