package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/beemsaisuoy/my-salon-app/internal/cart"
	"github.com/beemsaisuoy/my-salon-app/internal/checkout/reservation"
	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	"github.com/beemsaisuoy/my-salon-app/pkg/enums"
	pkgerrors "github.com/beemsaisuoy/my-salon-app/pkg/errors"
	"github.com/beemsaisuoy/my-salon-app/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// TaxRateProvider supplies the current shop tax rate as a percentage.
type TaxRateProvider interface {
	TaxRatePercent(ctx context.Context) (decimal.Decimal, error)
}

// Notifier receives post-commit events. Implementations must not block the
// checkout path; failures are logged and dropped.
type Notifier interface {
	OrderCreated(ctx context.Context, order *models.Order)
	ProductLowStock(ctx context.Context, product *models.Product)
}

// Service turns a cart into a persisted order. Stock is taken atomically for
// every line inside one transaction; any line that cannot be covered rolls
// the whole checkout back.
type Service interface {
	Checkout(ctx context.Context, customer Customer, input Input) (*OrderView, error)
}

type service struct {
	repo     *Repository
	tx       txRunner
	taxRates TaxRateProvider
	notifier Notifier
	logger   *logger.Logger
}

// NewService builds a checkout service with the required dependencies.
func NewService(repo *Repository, tx txRunner, taxRates TaxRateProvider, notifier Notifier, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("checkout repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if taxRates == nil {
		return nil, fmt.Errorf("tax rate provider required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		taxRates: taxRates,
		notifier: notifier,
		logger:   logg,
	}, nil
}

func (s *service) Checkout(ctx context.Context, customer Customer, input Input) (*OrderView, error) {
	if customer.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	paymentMethod, err := enums.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	rate, err := s.taxRates.TaxRatePercent(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tax rate")
	}

	var order *models.Order
	var lowStock []models.Product

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		merged, ids := mergeItems(input.Items)
		products, err := repo.FindActiveByIDs(ctx, ids)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
		}
		byID := make(map[uuid.UUID]models.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}
		for _, id := range ids {
			if _, ok := byID[id]; !ok {
				return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", id))
			}
		}

		requests := make([]reservation.Request, 0, len(ids))
		for _, id := range ids {
			requests = append(requests, reservation.Request{ProductID: id, Qty: merged[id]})
		}
		results, err := reservation.Reserve(ctx, tx, requests)
		if err != nil {
			return err
		}
		preOrdered := make(map[uuid.UUID]bool, len(results))
		for _, res := range results {
			preOrdered[res.ProductID] = res.PreOrder
		}

		lines := make([]cart.Line, 0, len(ids))
		items := make([]models.OrderItem, 0, len(ids))
		for _, id := range ids {
			product := byID[id]
			qty := merged[id]
			line := cart.Line{
				ProductID:       product.ID,
				Name:            product.Name,
				UnitPriceSatang: product.PriceSatang,
				Qty:             qty,
			}
			lines = append(lines, line)
			productID := product.ID
			items = append(items, models.OrderItem{
				ProductID:       &productID,
				Name:            product.Name,
				UnitPriceSatang: product.PriceSatang,
				Qty:             qty,
				TotalSatang:     line.LineTotalSatang(),
				IsPreOrder:      preOrdered[product.ID],
			})
		}

		totals, err := cart.ComputeTotals(lines, rate)
		if err != nil {
			return err
		}

		order = &models.Order{
			CustomerID:     customer.ID,
			CustomerName:   customer.Name,
			CustomerPhone:  input.CustomerPhone,
			Status:         enums.OrderStatusPending,
			PaymentMethod:  paymentMethod,
			PickupDate:     input.PickupDate,
			SubtotalSatang: totals.SubtotalSatang,
			TaxSatang:      totals.TaxSatang,
			TotalSatang:    totals.TotalSatang,
			StockDeducted:  true,
			Note:           input.Note,
			Items:          items,
		}
		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		lowStock, err = repo.findLowStock(ctx, reservedIDs(results))
		if err != nil {
			// Low-stock detection must never fail a checkout.
			s.logger.Warn(s.logger.WithField(ctx, "order_id", order.ID), "low stock lookup failed: "+err.Error())
			lowStock = nil
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.OrderCreated(ctx, order)
	for i := range lowStock {
		s.notifier.ProductLowStock(ctx, &lowStock[i])
	}

	return buildOrderView(order), nil
}

func mergeItems(items []cart.QuoteItem) (map[uuid.UUID]int, []uuid.UUID) {
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

func reservedIDs(results []reservation.Result) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(results))
	for _, res := range results {
		if !res.PreOrder {
			ids = append(ids, res.ProductID)
		}
	}
	return ids
}

func buildOrderView(order *models.Order) *OrderView {
	items := make([]ItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, ItemView{
			ProductID:       item.ProductID,
			Name:            item.Name,
			UnitPriceSatang: item.UnitPriceSatang,
			Qty:             item.Qty,
			TotalSatang:     item.TotalSatang,
			IsPreOrder:      item.IsPreOrder,
		})
	}
	return &OrderView{
		OrderID:        order.ID,
		OrderNumber:    order.OrderNumber,
		Status:         order.Status,
		PaymentMethod:  order.PaymentMethod,
		Items:          items,
		SubtotalSatang: order.SubtotalSatang,
		TaxSatang:      order.TaxSatang,
		TotalSatang:    order.TotalSatang,
		CreatedAt:      order.CreatedAt,
	}
}
