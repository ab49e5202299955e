package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supermart/backend/internal/domain/catalog"
	"github.com/supermart/backend/internal/domain/shared"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newMockProductRepository creates a GormProductRepository with a mocked SQL connection
func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormProductRepository(gormDB), mock, mockDB
}

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&catalog.Product{})
	require.NoError(t, err)

	return db
}

func TestGormProductRepository_FindByProductID(t *testing.T) {
	t.Run("finds existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		id := uuid.New()
		rows := sqlmock.NewRows([]string{
			"id", "product_id", "product_name", "retail_price", "discount", "quantity",
		}).AddRow(
			id, "P001", "Whole Milk 1L",
			decimal.NewFromFloat(2.50), decimal.NewFromInt(10), 40,
		)

		mock.ExpectQuery(`SELECT \* FROM "inventory" WHERE product_id = \$1`).
			WithArgs("P001", 1).
			WillReturnRows(rows)

		product, err := repo.FindByProductID(context.Background(), "P001")

		require.NoError(t, err)
		assert.Equal(t, id, product.ID)
		assert.Equal(t, "P001", product.ProductID)
		assert.Equal(t, "Whole Milk 1L", product.Name)
		assert.Equal(t, 40, product.Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "inventory" WHERE product_id = \$1`).
			WithArgs("NOPE", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		product, err := repo.FindByProductID(context.Background(), "NOPE")

		assert.Nil(t, product)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_Count(t *testing.T) {
	t.Run("counts inventory rows", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "inventory"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.Count(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(7), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_Upsert(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	t.Run("inserts new product", func(t *testing.T) {
		product, err := catalog.NewProduct("P100", "Rye Bread", decimal.NewFromFloat(3.20), decimal.Zero, 12)
		require.NoError(t, err)

		replaced, err := repo.Upsert(ctx, product)
		require.NoError(t, err)
		assert.False(t, replaced)

		found, err := repo.FindByProductID(ctx, "P100")
		require.NoError(t, err)
		assert.Equal(t, "Rye Bread", found.Name)
		assert.Equal(t, 12, found.Quantity)
	})

	t.Run("replaces existing product keeping identity", func(t *testing.T) {
		original, err := catalog.NewProduct("P200", "Olive Oil", decimal.NewFromFloat(8.99), decimal.Zero, 5)
		require.NoError(t, err)
		replaced, err := repo.Upsert(ctx, original)
		require.NoError(t, err)
		assert.False(t, replaced)

		update, err := catalog.NewProduct("P200", "Olive Oil 500ml", decimal.NewFromFloat(9.49), decimal.NewFromInt(5), 20)
		require.NoError(t, err)
		replaced, err = repo.Upsert(ctx, update)
		require.NoError(t, err)
		assert.True(t, replaced)

		found, err := repo.FindByProductID(ctx, "P200")
		require.NoError(t, err)
		assert.Equal(t, original.ID, found.ID)
		assert.Equal(t, "Olive Oil 500ml", found.Name)
		assert.Equal(t, "9.49", found.RetailPrice.StringFixed(2))
		assert.Equal(t, 20, found.Quantity)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestGormProductRepository_FindAll(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	for _, spec := range []struct {
		id   string
		name string
	}{
		{"P003", "Butter"},
		{"P001", "Milk"},
		{"P002", "Eggs"},
	} {
		product, err := catalog.NewProduct(spec.id, spec.name, decimal.NewFromInt(1), decimal.Zero, 1)
		require.NoError(t, err)
		_, err = repo.Upsert(ctx, product)
		require.NoError(t, err)
	}

	products, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "P001", products[0].ProductID)
	assert.Equal(t, "P002", products[1].ProductID)
	assert.Equal(t, "P003", products[2].ProductID)
}

func TestGormProductRepository_Save(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product, err := catalog.NewProduct("P300", "Yogurt", decimal.NewFromFloat(1.10), decimal.Zero, 10)
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, product)
	require.NoError(t, err)

	product.DecrementQuantity(4)
	require.NoError(t, repo.Save(ctx, product))

	found, err := repo.FindByProductID(ctx, "P300")
	require.NoError(t, err)
	assert.Equal(t, 6, found.Quantity)
}
