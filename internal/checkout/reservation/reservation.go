package reservation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	pkgerrors "github.com/beemsaisuoy/my-salon-app/pkg/errors"
)

// Request asks for qty units of a product to be taken from stock.
type Request struct {
	ProductID uuid.UUID
	Qty       int
}

// Result reports how a single request was satisfied. PreOrder is true when
// stock could not cover the request and the product accepts pre-orders; no
// stock was taken for that line.
type Result struct {
	ProductID    uuid.UUID
	Qty          int
	PreOrder     bool
	PreOrderDays int
}

// Reserve atomically decrements stock for every request inside the caller's
// transaction. Each decrement is conditional (stock >= qty) so concurrent
// checkouts can never drive stock negative. A line that cannot be covered
// falls back to pre-order when the product allows it; otherwise the whole
// reservation fails with an out-of-stock error and the transaction rolls
// back, leaving every other line untouched.
func Reserve(ctx context.Context, tx *gorm.DB, requests []Request) ([]Result, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "reservation requires a transaction")
	}

	results := make([]Result, 0, len(requests))
	for _, req := range requests {
		if req.ProductID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
		}
		if req.Qty <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "reservation qty must be positive")
		}

		update := tx.WithContext(ctx).
			Model(&models.Product{}).
			Where("id = ? AND is_active = ? AND stock >= ?", req.ProductID, true, req.Qty).
			UpdateColumn("stock", gorm.Expr("stock - ?", req.Qty))
		if update.Error != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, update.Error, "decrement stock")
		}
		if update.RowsAffected > 0 {
			results = append(results, Result{ProductID: req.ProductID, Qty: req.Qty})
			continue
		}

		// Nothing was decremented: the product is missing, inactive, or short
		// on stock. Reload to tell those cases apart.
		var product models.Product
		if err := tx.WithContext(ctx).First(&product, "id = ?", req.ProductID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", req.ProductID))
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		if !product.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %q is no longer available", product.Name))
		}
		if product.PreOrderDays > 0 {
			results = append(results, Result{
				ProductID:    req.ProductID,
				Qty:          req.Qty,
				PreOrder:     true,
				PreOrderDays: product.PreOrderDays,
			})
			continue
		}

		return nil, pkgerrors.New(pkgerrors.CodeOutOfStock, fmt.Sprintf("%q has only %d left", product.Name, product.Stock)).
			WithDetails(map[string]any{
				"product_id":    product.ID,
				"product_name":  product.Name,
				"requested_qty": req.Qty,
				"stock":         product.Stock,
			})
	}
	return results, nil
}

// Deduct is like Reserve but without the pre-order fallback: every request
// must be covered by stock or the whole call fails. Used when re-applying a
// deduction for an order whose lines were already classified at checkout.
func Deduct(ctx context.Context, tx *gorm.DB, requests []Request) error {
	for _, req := range requests {
		if req.Qty <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "deduction qty must be positive")
		}
		update := tx.WithContext(ctx).
			Model(&models.Product{}).
			Where("id = ? AND stock >= ?", req.ProductID, req.Qty).
			UpdateColumn("stock", gorm.Expr("stock - ?", req.Qty))
		if update.Error != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, update.Error, "decrement stock")
		}
		if update.RowsAffected == 0 {
			return pkgerrors.New(pkgerrors.CodeOutOfStock, fmt.Sprintf("insufficient stock for product %s", req.ProductID)).
				WithDetails(map[string]any{"product_id": req.ProductID, "requested_qty": req.Qty})
		}
	}
	return nil
}

// Release returns previously reserved stock, e.g. when an order is cancelled.
// Pre-order lines never held stock and must not be released.
func Release(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "release qty must be positive")
	}
	err := tx.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty)).
		Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release stock")
	}
	return nil
}
