package dto

import (
	"github.com/shopspring/decimal"

	"github.com/supermart/backend/internal/domain/catalog"
)

// ProductResponse is the API representation of an inventory product
type ProductResponse struct {
	ProductID       string          `json:"product_id"`
	Name            string          `json:"product_name"`
	RetailPrice     decimal.Decimal `json:"retail_price"`
	DiscountPercent decimal.Decimal `json:"discount"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	Quantity        int             `json:"quantity"`
}

// ToProductResponse converts a product entity to its API representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ProductID:       p.ProductID,
		Name:            p.Name,
		RetailPrice:     p.RetailPrice,
		DiscountPercent: p.DiscountPercent,
		DiscountedPrice: p.DiscountedUnitPrice(),
		Quantity:        p.Quantity,
	}
}

// ToProductResponses converts a slice of product entities
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
