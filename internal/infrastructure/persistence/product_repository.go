package persistence

import (
	"context"
	"errors"

	"github.com/supermart/backend/internal/domain/catalog"
	"github.com/supermart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByProductID finds a product by its external product identifier
func (r *GormProductRepository) FindByProductID(ctx context.Context, productID string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll returns all products ordered by product identifier
func (r *GormProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Order("product_id").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save persists changes to an existing product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Upsert replaces the record sharing the product identifier, inserting when
// absent. Returns true when an existing record was replaced.
func (r *GormProductRepository) Upsert(ctx context.Context, product *catalog.Product) (bool, error) {
	existing, err := r.FindByProductID(ctx, product.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
				return false, err
			}
			return false, nil
		}
		return false, err
	}

	existing.Replace(product.Name, product.RetailPrice, product.DiscountPercent, product.Quantity)
	if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of products in the inventory
func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
