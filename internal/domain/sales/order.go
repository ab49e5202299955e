package sales

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/supermart/backend/internal/domain/shared"
)

// OrderTimeLayout is the timestamp format stored with every order.
// The layout sorts lexicographically, which the monthly aggregation
// relies on for its cutoff comparison.
const OrderTimeLayout = "2006/01/02 15:04:05"

// LineItems maps an external product identifier to the ordered quantity
type LineItems map[string]int

// Value implements driver.Valuer so line items persist as a JSON column
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		l = LineItems{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for database retrieval
func (l *LineItems) Scan(value any) error {
	if value == nil {
		*l = LineItems{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into LineItems", value)
	}
	return json.Unmarshal(data, l)
}

// Order is a completed customer order. It is created once at completion
// time and never mutated: the total is frozen with the prices and discounts
// in effect when the order was finished.
type Order struct {
	shared.BaseEntity
	Items     LineItems       `gorm:"column:order_items;type:text;not null" json:"order_items"`
	Total     decimal.Decimal `gorm:"column:total;type:decimal(18,2);not null" json:"total"`
	OrderTime string          `gorm:"column:order_time;type:varchar(19);not null;index" json:"order_time"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a completed order stamped with the given completion time
func NewOrder(items LineItems, total decimal.Decimal, completedAt time.Time) (*Order, error) {
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one line item")
	}
	for productID, qty := range items {
		if productID == "" {
			return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "Line item product ID cannot be empty")
		}
		if qty <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Line item quantity must be positive")
		}
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Order total cannot be negative")
	}

	return &Order{
		BaseEntity: shared.NewBaseEntity(),
		Items:      items,
		Total:      total,
		OrderTime:  completedAt.Format(OrderTimeLayout),
	}, nil
}

// MonthKey returns the year-month bucket for this order, taken as the first
// seven characters of the stored timestamp ("2006/01"). Bucketing is a string
// prefix operation, not a calendar computation.
func (o *Order) MonthKey() string {
	return MonthKey(o.OrderTime)
}

// MonthKey extracts the year-month bucket from an order timestamp string
func MonthKey(orderTime string) string {
	if len(orderTime) < 7 {
		return orderTime
	}
	return orderTime[:7]
}
