package sales

import "github.com/shopspring/decimal"

// TaxRate is the flat sales tax applied to every order total
var TaxRate = decimal.NewFromFloat(0.18)

var (
	one        = decimal.NewFromInt(1)
	oneHundred = decimal.NewFromInt(100)
)

// LineSubtotal computes the discounted subtotal for a single line item:
// quantity * unit price * (1 - discount/100).
func LineSubtotal(quantity int, unitPrice, discountPercent decimal.Decimal) decimal.Decimal {
	factor := one.Sub(discountPercent.Div(oneHundred))
	return unitPrice.Mul(factor).Mul(decimal.NewFromInt(int64(quantity)))
}

// FinalizeTotal applies the flat tax to the summed subtotals and rounds the
// result to two decimal places, half up.
func FinalizeTotal(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(one.Add(TaxRate)).Round(2)
}
