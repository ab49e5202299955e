package sales

import "context"

// OrderRepository defines the persistence contract for orders.
// The orders collection is append-only: there is no update or delete.
type OrderRepository interface {
	// Insert appends a completed order
	Insert(ctx context.Context, order *Order) error

	// FindSince returns all orders whose order_time is at or after the given
	// timestamp string. The comparison is textual; OrderTimeLayout sorts
	// lexicographically so this matches a chronological cutoff.
	FindSince(ctx context.Context, orderTime string) ([]Order, error)

	// FindAll returns all orders, oldest first
	FindAll(ctx context.Context) ([]Order, error)

	// Count returns the number of stored orders
	Count(ctx context.Context) (int64, error)
}
