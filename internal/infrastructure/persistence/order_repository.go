package persistence

import (
	"context"

	"github.com/supermart/backend/internal/domain/sales"
	"gorm.io/gorm"
)

// GormOrderRepository implements sales.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Insert appends a completed order
func (r *GormOrderRepository) Insert(ctx context.Context, order *sales.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// FindSince returns orders whose completion timestamp is at or after the
// cutoff. Timestamps use a fixed-width layout, so string comparison orders
// them chronologically.
func (r *GormOrderRepository) FindSince(ctx context.Context, orderTime string) ([]sales.Order, error) {
	var orders []sales.Order
	if err := r.db.WithContext(ctx).
		Where("order_time >= ?", orderTime).
		Order("order_time").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAll returns every recorded order in completion order
func (r *GormOrderRepository) FindAll(ctx context.Context) ([]sales.Order, error) {
	var orders []sales.Order
	if err := r.db.WithContext(ctx).
		Order("order_time").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count returns the number of recorded orders
func (r *GormOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sales.Order{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
