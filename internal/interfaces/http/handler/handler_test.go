package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	catalogapp "github.com/supermart/backend/internal/application/catalog"
	reportapp "github.com/supermart/backend/internal/application/report"
	salesapp "github.com/supermart/backend/internal/application/sales"
	"github.com/supermart/backend/internal/domain/sales"
	"github.com/supermart/backend/internal/infrastructure/config"
	"github.com/supermart/backend/internal/infrastructure/persistence"
	"github.com/supermart/backend/internal/interfaces/http/middleware"
	"github.com/supermart/backend/internal/interfaces/http/router"
)

type testEnv struct {
	engine *gin.Engine
	db     *gorm.DB
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:          "sqlite",
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 1,
		ConnMaxIdleTime: 1,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate())
	t.Cleanup(func() { _ = database.Close() })

	logger := zap.NewNop()
	productRepo := persistence.NewGormProductRepository(database.DB)
	orderRepo := persistence.NewGormOrderRepository(database.DB)

	productService := catalogapp.NewProductService(productRepo)
	importService := catalogapp.NewImportService(productRepo, logger)
	orderService := salesapp.NewOrderService(productRepo, orderRepo, logger)
	trendService := reportapp.NewSalesTrendService(orderRepo)

	engine := gin.New()
	engine.Use(middleware.RequestID())

	systemHandler := NewSystemHandler(database)
	engine.GET("/health", systemHandler.Health)

	router.NewRouter(engine).
		Register(NewProductHandler(productService)).
		Register(NewOrderHandler(orderService)).
		Register(NewReportHandler(trendService)).
		Register(NewImportHandler(importService)).
		Setup()

	return &testEnv{engine: engine, db: database.DB}
}

func (e *testEnv) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) uploadCSV(t *testing.T, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "inventory.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) seedProduct(t *testing.T, productID, name string, price float64, discount float64, quantity int) {
	t.Helper()
	csv := "product id, product name, Retail price, Discount, Quantity\n" +
		fmt.Sprintf("%s,%s,%.2f,%.0f,%d\n", productID, name, price, discount, quantity)
	w := e.uploadCSV(t, csv)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestImportEndpoint(t *testing.T) {
	t.Run("imports valid file", func(t *testing.T) {
		env := setupTestEnv(t)

		w := env.uploadCSV(t, "product id, product name, Retail price, Discount, Quantity\n"+
			"P001,Whole Milk 1L,2.50,10,40\n"+
			"P002,Rye Bread,3.20,0,12\n")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"total_rows":2`)
		assert.Contains(t, w.Body.String(), `"imported_rows":2`)
	})

	t.Run("reimport replaces by product id", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedProduct(t, "P001", "Milk", 2.50, 0, 40)

		w := env.uploadCSV(t, "product id, product name, Retail price, Discount, Quantity\n"+
			"P001,Milk 1L,2.80,0,50\n")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"updated_rows":1`)

		get := env.request(t, http.MethodGet, "/api/v1/products/P001", nil)
		assert.Contains(t, get.Body.String(), "Milk 1L")
		assert.Contains(t, get.Body.String(), `"quantity":50`)
	})

	t.Run("malformed row rejects whole file", func(t *testing.T) {
		env := setupTestEnv(t)

		w := env.uploadCSV(t, "product id, product name, Retail price, Discount, Quantity\n"+
			"P001,Milk,2.50,0,40\n"+
			"P002,Eggs,oops,0,30\n")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		list := env.request(t, http.MethodGet, "/api/v1/products", nil)
		assert.NotContains(t, list.Body.String(), "P001")
	})

	t.Run("missing file field", func(t *testing.T) {
		env := setupTestEnv(t)

		w := env.request(t, http.MethodPost, "/api/v1/inventory/import", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	env.seedProduct(t, "P001", "Milk", 2.50, 10, 40)

	t.Run("get existing product", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/v1/products/P001", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"product_id":"P001"`)
		assert.Contains(t, w.Body.String(), `"discounted_price"`)
	})

	t.Run("get missing product returns 404", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/v1/products/NOPE", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
	})

	t.Run("list inventory", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/v1/products", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "P001")
	})
}

func TestOrderEndpoints(t *testing.T) {
	t.Run("check item with stock", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedProduct(t, "P001", "Milk", 2.50, 0, 5)

		w := env.request(t, http.MethodPost, "/api/v1/orders/check-item",
			gin.H{"product_id": "P001", "quantity": 5})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"available":true`)
	})

	t.Run("check item short on stock", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedProduct(t, "P001", "Milk", 2.50, 0, 5)

		w := env.request(t, http.MethodPost, "/api/v1/orders/check-item",
			gin.H{"product_id": "P001", "quantity": 6})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_INSUFFICIENT_STOCK")
	})

	t.Run("check unknown item", func(t *testing.T) {
		env := setupTestEnv(t)

		w := env.request(t, http.MethodPost, "/api/v1/orders/check-item",
			gin.H{"product_id": "NOPE", "quantity": 1})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("price order applies discount and tax", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedProduct(t, "P001", "Milk", 2.50, 10, 40)
		env.seedProduct(t, "P002", "Bread", 3.20, 0, 12)

		w := env.request(t, http.MethodPost, "/api/v1/orders/price",
			gin.H{"items": gin.H{"P001": 2, "P002": 1}})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total":"9.09"`)
	})

	t.Run("pricing a missing product yields a notice", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedProduct(t, "P001", "Milk", 2.50, 0, 40)

		w := env.request(t, http.MethodPost, "/api/v1/orders/price",
			gin.H{"items": gin.H{"P001": 2, "GONE": 1}})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "GONE")
		assert.Contains(t, w.Body.String(), `"total":"5.90"`)
	})

	t.Run("submit order records it and decrements stock", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedProduct(t, "P001", "Milk", 2.50, 0, 40)

		w := env.request(t, http.MethodPost, "/api/v1/orders",
			gin.H{"items": gin.H{"P001": 3}})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"total":"8.85"`)
		assert.Contains(t, w.Body.String(), `"order_time"`)

		get := env.request(t, http.MethodGet, "/api/v1/products/P001", nil)
		assert.Contains(t, get.Body.String(), `"quantity":37`)

		var count int64
		require.NoError(t, env.db.Model(&sales.Order{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("submitting an empty order fails", func(t *testing.T) {
		env := setupTestEnv(t)

		w := env.request(t, http.MethodPost, "/api/v1/orders", gin.H{"items": gin.H{}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		env := setupTestEnv(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		env.engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_INVALID_JSON")
	})
}

func TestReportEndpoint(t *testing.T) {
	t.Run("aggregates submitted orders into the current month", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedProduct(t, "P001", "Milk", 2.50, 0, 40)

		w := env.request(t, http.MethodPost, "/api/v1/orders", gin.H{"items": gin.H{"P001": 3}})
		require.Equal(t, http.StatusCreated, w.Code)
		w = env.request(t, http.MethodPost, "/api/v1/orders", gin.H{"items": gin.H{"P001": 1}})
		require.Equal(t, http.StatusCreated, w.Code)

		report := env.request(t, http.MethodGet, "/api/v1/reports/sales/monthly?months=1", nil)
		require.Equal(t, http.StatusOK, report.Code)
		// 8.85 + 2.95
		assert.Contains(t, report.Body.String(), `"total":"11.8"`)
	})

	t.Run("rejects non-numeric window", func(t *testing.T) {
		env := setupTestEnv(t)

		w := env.request(t, http.MethodGet, "/api/v1/reports/sales/monthly?months=abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty series without orders", func(t *testing.T) {
		env := setupTestEnv(t)

		w := env.request(t, http.MethodGet, "/api/v1/reports/sales/monthly", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"series":[]`)
	})
}
