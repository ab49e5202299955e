package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/supermart/backend/internal/domain/shared"
)

// Product represents a stocked item in the inventory.
// The column names (product_id, product_name, retail_price, discount, quantity)
// are part of the persistence contract shared with the spreadsheet export and
// must not be renamed.
type Product struct {
	shared.BaseEntity
	ProductID       string          `gorm:"column:product_id;type:varchar(50);not null;uniqueIndex" json:"product_id"`
	Name            string          `gorm:"column:product_name;type:varchar(200);not null" json:"product_name"`
	RetailPrice     decimal.Decimal `gorm:"column:retail_price;type:decimal(18,4);not null;default:0" json:"retail_price"`
	DiscountPercent decimal.Decimal `gorm:"column:discount;type:decimal(7,4);not null;default:0" json:"discount"`
	Quantity        int             `gorm:"column:quantity;not null;default:0" json:"quantity"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "inventory"
}

var oneHundred = decimal.NewFromInt(100)

// NewProduct creates a new product after validating the inventory contract fields
func NewProduct(productID, name string, retailPrice, discountPercent decimal.Decimal, quantity int) (*Product, error) {
	if err := validateProductID(productID); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if retailPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Retail price cannot be negative")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(oneHundred) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount must be between 0 and 100 percent")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	return &Product{
		BaseEntity:      shared.NewBaseEntity(),
		ProductID:       strings.TrimSpace(productID),
		Name:            name,
		RetailPrice:     retailPrice,
		DiscountPercent: discountPercent,
		Quantity:        quantity,
	}, nil
}

// DiscountedUnitPrice returns the unit price after applying the product's discount
func (p *Product) DiscountedUnitPrice() decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(p.DiscountPercent.Div(oneHundred))
	return p.RetailPrice.Mul(factor)
}

// HasStock reports whether the on-hand quantity covers the requested amount.
// This is a point-in-time read; stock may change before an order is committed.
func (p *Product) HasStock(requested int) bool {
	return p.Quantity >= requested
}

// DecrementQuantity reduces the on-hand quantity by the ordered amount.
// There is no floor: the availability check happens at line-item add time
// against a possibly stale read, so the quantity may go negative here.
func (p *Product) DecrementQuantity(n int) {
	p.Quantity -= n
	p.UpdatedAt = time.Now()
}

// Replace overwrites all contract fields from an imported record, keeping the
// entity identity. Used by the inventory import upsert.
func (p *Product) Replace(name string, retailPrice, discountPercent decimal.Decimal, quantity int) {
	p.Name = name
	p.RetailPrice = retailPrice
	p.DiscountPercent = discountPercent
	p.Quantity = quantity
	p.UpdatedAt = time.Now()
}

// validateProductID validates the external product identifier
func validateProductID(id string) error {
	if strings.TrimSpace(id) == "" {
		return shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	}
	if len(id) > 50 {
		return shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot exceed 50 characters")
	}
	return nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
