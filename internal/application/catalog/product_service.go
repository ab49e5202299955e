package catalog

import (
	"context"

	"github.com/supermart/backend/internal/domain/catalog"
)

// ProductService handles read access to the inventory catalog
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Get returns one product by its external identifier
func (s *ProductService) Get(ctx context.Context, productID string) (*catalog.Product, error) {
	return s.productRepo.FindByProductID(ctx, productID)
}

// List returns the full inventory ordered by product identifier
func (s *ProductService) List(ctx context.Context) ([]catalog.Product, error) {
	return s.productRepo.FindAll(ctx)
}
