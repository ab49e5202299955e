package sales

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/supermart/backend/internal/domain/catalog"
	"github.com/supermart/backend/internal/domain/sales"
	"github.com/supermart/backend/internal/domain/shared"
)

// PricingResult is the outcome of pricing a set of line items. Items whose
// product cannot be found are reported as notices and excluded from the
// total rather than failing the whole pricing run.
type PricingResult struct {
	Total   decimal.Decimal `json:"total"`
	Notices []string        `json:"notices,omitempty"`
}

// OrderService coordinates checkout: line item checks, pricing, and order
// submission with the follow-up stock reconciliation.
type OrderService struct {
	productRepo catalog.ProductRepository
	orderRepo   sales.OrderRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewOrderService creates a new OrderService
func NewOrderService(productRepo catalog.ProductRepository, orderRepo sales.OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		logger:      logger.Named("orders"),
		now:         time.Now,
	}
}

// CheckLineItem verifies that a product exists and its on-hand quantity
// covers the requested amount. The check reads current stock and is not a
// reservation: stock can change before the order is submitted.
func (s *OrderService) CheckLineItem(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return shared.ErrInvalidInput
	}

	product, err := s.productRepo.FindByProductID(ctx, productID)
	if err != nil {
		return err
	}
	if !product.HasStock(quantity) {
		return shared.ErrInsufficientStock
	}
	return nil
}

// PriceOrder computes the tax-inclusive total for a set of line items.
// Each line is priced at the product's discounted unit price; the sum is
// then taxed and rounded to two decimal places. A line whose product is
// missing from the catalog contributes nothing to the total and produces a
// notice. An empty item set prices to zero.
func (s *OrderService) PriceOrder(ctx context.Context, items sales.LineItems) (*PricingResult, error) {
	result := &PricingResult{}

	subtotal := decimal.Zero
	for _, productID := range sortedProductIDs(items) {
		product, err := s.productRepo.FindByProductID(ctx, productID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				result.Notices = append(result.Notices,
					fmt.Sprintf("could not price item %s: product not found", productID))
				continue
			}
			return nil, err
		}
		subtotal = subtotal.Add(sales.LineSubtotal(items[productID], product.RetailPrice, product.DiscountPercent))
	}

	result.Total = sales.FinalizeTotal(subtotal)
	return result, nil
}

// SubmitOrder prices the items, records the completed order stamped with the
// current time, and then walks the line items decrementing stock. The stock
// walk happens after the order is saved and is not transactional with it:
// items whose product has disappeared are skipped, and concurrent sales can
// drive a quantity negative.
func (s *OrderService) SubmitOrder(ctx context.Context, items sales.LineItems) (*sales.Order, *PricingResult, error) {
	pricing, err := s.PriceOrder(ctx, items)
	if err != nil {
		return nil, nil, err
	}

	order, err := sales.NewOrder(items, pricing.Total, s.now())
	if err != nil {
		return nil, nil, err
	}

	if err := s.orderRepo.Insert(ctx, order); err != nil {
		return nil, nil, err
	}

	if err := s.reconcileStock(ctx, items); err != nil {
		return nil, nil, err
	}

	s.logger.Info("order submitted",
		zap.String("order_id", order.ID.String()),
		zap.String("total", order.Total.StringFixed(2)),
		zap.Int("line_items", len(items)),
	)

	return order, pricing, nil
}

// reconcileStock decrements on-hand quantities for the ordered items.
// Products no longer in the catalog are skipped without complaint.
func (s *OrderService) reconcileStock(ctx context.Context, items sales.LineItems) error {
	for _, productID := range sortedProductIDs(items) {
		product, err := s.productRepo.FindByProductID(ctx, productID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return err
		}

		product.DecrementQuantity(items[productID])
		if err := s.productRepo.Save(ctx, product); err != nil {
			return err
		}
	}
	return nil
}

// sortedProductIDs gives a stable iteration order over line items
func sortedProductIDs(items sales.LineItems) []string {
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
