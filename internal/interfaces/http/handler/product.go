package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/supermart/backend/internal/application/catalog"
	"github.com/supermart/backend/internal/interfaces/http/dto"
)

// ProductHandler serves read access to the inventory catalog
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:id", h.Get)
	}
}

// List returns the full inventory
// GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToProductResponses(products))
}

// Get returns one product by its external identifier
// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	productID := c.Param("id")
	if productID == "" {
		h.BadRequest(c, "Product ID is required")
		return
	}

	product, err := h.productService.Get(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToProductResponse(product))
}
