package catalog

import "context"

// ProductRepository defines the persistence contract for products
type ProductRepository interface {
	// FindByProductID finds a product by its external product identifier.
	// Returns shared.ErrNotFound when no product matches.
	FindByProductID(ctx context.Context, productID string) (*Product, error)

	// FindAll returns all products ordered by product identifier
	FindAll(ctx context.Context) ([]Product, error)

	// Save persists changes to an existing product
	Save(ctx context.Context, product *Product) error

	// Upsert replaces the product with the same product identifier, inserting
	// it when absent. Returns true when an existing record was replaced.
	Upsert(ctx context.Context, product *Product) (bool, error)

	// Count returns the number of products in the inventory
	Count(ctx context.Context) (int64, error)
}
