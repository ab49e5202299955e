package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supermart/backend/internal/domain/catalog"
	"github.com/supermart/backend/internal/domain/shared"
)

func TestProductService(t *testing.T) {
	ctx := context.Background()

	t.Run("Get returns product from repository", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		product, err := catalog.NewProduct("P001", "Milk", decimal.NewFromFloat(2.50), decimal.Zero, 5)
		require.NoError(t, err)
		repo.On("FindByProductID", ctx, "P001").Return(product, nil)

		got, err := service.Get(ctx, "P001")
		require.NoError(t, err)
		assert.Equal(t, product, got)
	})

	t.Run("Get propagates not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		repo.On("FindByProductID", ctx, "NOPE").Return(nil, shared.ErrNotFound)

		_, err := service.Get(ctx, "NOPE")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("List returns all products", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		repo.On("FindAll", ctx).Return([]catalog.Product{}, nil)

		products, err := service.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}
