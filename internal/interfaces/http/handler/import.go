package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/supermart/backend/internal/application/catalog"
	"github.com/supermart/backend/internal/infrastructure/csvimport"
	"github.com/supermart/backend/internal/interfaces/http/dto"
)

// ImportHandler serves inventory CSV uploads
type ImportHandler struct {
	BaseHandler
	importService *catalogapp.ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService *catalogapp.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// RegisterRoutes registers import routes
func (h *ImportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/inventory/import", h.ImportInventory)
}

// ImportInventory loads an uploaded CSV file into the inventory. The upload
// is a multipart form with the file under the "file" field. A malformed file
// is rejected as a whole; nothing is written.
// POST /api/v1/inventory/import
func (h *ImportHandler) ImportInventory(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeImportInvalidFile, "A CSV file is required under the 'file' form field")
		return
	}
	defer file.Close()

	result, err := h.importService.ImportInventory(c.Request.Context(), file)
	if err != nil {
		h.handleImportError(c, err)
		return
	}
	h.Success(c, result)
}

// handleImportError maps parse failures to import error codes
func (h *ImportHandler) handleImportError(c *gin.Context, err error) {
	var rowErr csvimport.RowError
	if errors.As(err, &rowErr) {
		h.UnprocessableEntity(c, dto.ErrCodeImportMalformedRow, rowErr.Error())
		return
	}

	switch {
	case errors.Is(err, csvimport.ErrEmptyFile),
		errors.Is(err, csvimport.ErrInvalidEncoding),
		errors.Is(err, csvimport.ErrMissingHeader),
		errors.Is(err, csvimport.ErrNoDataRows):
		h.Error(c, http.StatusBadRequest, dto.ErrCodeImportInvalidFile, err.Error())
	default:
		h.HandleError(c, err)
	}
}
