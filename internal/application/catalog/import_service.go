package catalog

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/supermart/backend/internal/domain/catalog"
	"github.com/supermart/backend/internal/infrastructure/csvimport"
)

// ImportResult summarizes a completed inventory import
type ImportResult struct {
	TotalRows    int `json:"total_rows"`
	ImportedRows int `json:"imported_rows"`
	UpdatedRows  int `json:"updated_rows"`
}

// ImportService loads inventory CSV files into the catalog
type ImportService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewImportService creates a new ImportService
func NewImportService(productRepo catalog.ProductRepository, logger *zap.Logger) *ImportService {
	return &ImportService{
		productRepo: productRepo,
		logger:      logger.Named("import"),
	}
}

// ImportInventory parses an inventory CSV and upserts every record, keyed by
// product identifier. The whole file is parsed and validated before any
// record is written: a malformed row aborts the import with nothing stored.
// Rows sharing a product identifier within one file are applied in order, so
// the last occurrence wins.
func (s *ImportService) ImportInventory(ctx context.Context, r io.Reader) (*ImportResult, error) {
	records, err := csvimport.ParseInventory(r)
	if err != nil {
		return nil, err
	}

	products := make([]*catalog.Product, 0, len(records))
	for _, record := range records {
		product, err := catalog.NewProduct(
			record.ProductID,
			record.Name,
			record.RetailPrice,
			record.DiscountPercent,
			record.Quantity,
		)
		if err != nil {
			return nil, csvimport.NewRowError(record.Line, "", err.Error(), record.ProductID)
		}
		products = append(products, product)
	}

	result := &ImportResult{TotalRows: len(products)}
	for _, product := range products {
		replaced, err := s.productRepo.Upsert(ctx, product)
		if err != nil {
			return nil, err
		}
		if replaced {
			result.UpdatedRows++
		} else {
			result.ImportedRows++
		}
	}

	s.logger.Info("inventory import completed",
		zap.Int("total_rows", result.TotalRows),
		zap.Int("imported", result.ImportedRows),
		zap.Int("updated", result.UpdatedRows),
	)

	return result, nil
}
