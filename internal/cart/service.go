package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	pkgerrors "github.com/beemsaisuoy/my-salon-app/pkg/errors"
)

// ProductFinder loads catalog rows for quoting.
type ProductFinder interface {
	FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

// TaxRateProvider supplies the current shop tax rate as a percentage.
type TaxRateProvider interface {
	TaxRatePercent(ctx context.Context) (decimal.Decimal, error)
}

// Service prices carts on the server. The storefront never sends prices; it
// sends product ids and quantities and receives the authoritative totals.
type Service interface {
	Quote(ctx context.Context, input QuoteInput) (*Quote, error)
}

type service struct {
	products ProductFinder
	taxRates TaxRateProvider
}

// NewService builds a cart quote service with the required dependencies.
func NewService(products ProductFinder, taxRates TaxRateProvider) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	if taxRates == nil {
		return nil, fmt.Errorf("tax rate provider required")
	}
	return &service{products: products, taxRates: taxRates}, nil
}

func (s *service) Quote(ctx context.Context, input QuoteInput) (*Quote, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	merged, order := mergeItems(input.Items)

	ids := make([]uuid.UUID, 0, len(order))
	for _, id := range order {
		ids = append(ids, id)
	}
	products, err := s.products.FindActiveByIDs(ctx, ids)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	rate, err := s.taxRates.TaxRatePercent(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tax rate")
	}

	lines := make([]Line, 0, len(order))
	quoteLines := make([]QuoteLine, 0, len(order))
	for _, id := range order {
		product, ok := byID[id]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", id))
		}
		qty := merged[id]
		line := Line{
			ProductID:       product.ID,
			Name:            product.Name,
			UnitPriceSatang: product.PriceSatang,
			Qty:             qty,
		}
		lines = append(lines, line)
		quoteLines = append(quoteLines, QuoteLine{
			ProductID:       product.ID,
			Name:            product.Name,
			UnitPriceSatang: product.PriceSatang,
			Qty:             qty,
			TotalSatang:     line.LineTotalSatang(),
			Availability:    classifyAvailability(product, qty),
			PreOrderDays:    product.PreOrderDays,
		})
	}

	totals, err := ComputeTotals(lines, rate)
	if err != nil {
		return nil, err
	}

	return &Quote{
		Lines:          quoteLines,
		ItemCount:      totals.ItemCount,
		SubtotalSatang: totals.SubtotalSatang,
		TaxSatang:      totals.TaxSatang,
		TotalSatang:    totals.TotalSatang,
		TaxRatePercent: rate.StringFixed(2),
	}, nil
}

// mergeItems collapses duplicate product ids by summing quantities while
// keeping first-seen order.
func mergeItems(items []QuoteItem) (map[uuid.UUID]int, []uuid.UUID) {
	merged := make(map[uuid.UUID]int, len(items))
	order := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, seen := merged[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		merged[item.ProductID] += item.Qty
	}
	return merged, order
}

func classifyAvailability(product models.Product, qty int) Availability {
	if product.Stock >= qty {
		return AvailabilityInStock
	}
	if product.PreOrderDays > 0 {
		return AvailabilityPreOrder
	}
	return AvailabilityOutOfStock
}
