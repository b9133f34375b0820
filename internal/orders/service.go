package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beemsaisuoy/my-salon-app/internal/checkout/reservation"
	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	"github.com/beemsaisuoy/my-salon-app/pkg/enums"
	pkgerrors "github.com/beemsaisuoy/my-salon-app/pkg/errors"
	"github.com/beemsaisuoy/my-salon-app/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines order reads and lifecycle transitions.
type Service interface {
	List(ctx context.Context, actor Actor, input ListInput) (*Page, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input StatusUpdateInput) (*models.Order, error)
	Cancel(ctx context.Context, actor Actor, id uuid.UUID) (*models.Order, error)
}

type service struct {
	repo *Repository
	tx   txRunner
	now  func() time.Time
}

// NewService builds an order service with the required dependencies.
func NewService(repo *Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, actor Actor, input ListInput) (*Page, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	params := listOrdersParams{Limit: input.Pagination.Limit, Cursor: cursor}
	if !actor.IsAdmin() {
		customerID := actor.UserID
		params.CustomerID = &customerID
	}
	if input.Status != nil {
		status, err := enums.ParseOrderStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		params.Status = &status
	}

	orders, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	page := &Page{Orders: orders}
	if next != nil {
		encoded := pagination.EncodeCursor(*next)
		page.NextCursor = &encoded
	}
	return page, nil
}

func (s *service) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Order, error) {
	order, err := s.loadOrder(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && order.CustomerID != actor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

// UpdateStatus moves the order through the kitchen flow. Entering the
// prepared state claims the stock deduction flag first: if checkout already
// deducted (the normal case) the claim fails and stock is left alone, so
// the deduction can never happen twice.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, input StatusUpdateInput) (*models.Order, error) {
	target, err := enums.ParseOrderStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	var updated *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := s.loadOrder(ctx, repo, id)
		if err != nil {
			return err
		}
		if !order.Status.CanTransitionTo(target) {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot move order from %s to %s", order.Status, target)).
				WithDetails(map[string]any{"from": order.Status, "to": target})
		}

		switch target {
		case enums.OrderStatusPrepared:
			if err := s.deductStockOnce(ctx, tx, repo, order); err != nil {
				return err
			}
		case enums.OrderStatusCancelled:
			if err := s.releaseStockOnce(ctx, tx, repo, order); err != nil {
				return err
			}
		}

		if err := repo.UpdateStatus(ctx, order.ID, target, s.now()); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		updated, err = s.loadOrder(ctx, repo, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Cancel lets a customer withdraw their own pending order; admins can cancel
// any pre-terminal order through UpdateStatus as well.
func (s *service) Cancel(ctx context.Context, actor Actor, id uuid.UUID) (*models.Order, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := s.loadOrder(ctx, repo, id)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() {
			if order.CustomerID != actor.UserID {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			if order.Status != enums.OrderStatusPending {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "only pending orders can be cancelled")
			}
		}
		if !order.Status.CanTransitionTo(enums.OrderStatusCancelled) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order can no longer be cancelled")
		}

		if err := s.releaseStockOnce(ctx, tx, repo, order); err != nil {
			return err
		}
		if err := repo.UpdateStatus(ctx, order.ID, enums.OrderStatusCancelled, s.now()); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel order")
		}
		updated, err = s.loadOrder(ctx, repo, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) loadOrder(ctx context.Context, repo *Repository, id uuid.UUID) (*models.Order, error) {
	order, err := repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) deductStockOnce(ctx context.Context, tx *gorm.DB, repo *Repository, order *models.Order) error {
	claimed, err := repo.ClaimStockDeduction(ctx, order.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim stock deduction")
	}
	if !claimed {
		return nil
	}
	requests := stockRequests(order)
	if len(requests) == 0 {
		return nil
	}
	return reservation.Deduct(ctx, tx, requests)
}

func (s *service) releaseStockOnce(ctx context.Context, tx *gorm.DB, repo *Repository, order *models.Order) error {
	released, err := repo.ReleaseStockClaim(ctx, order.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release stock claim")
	}
	if !released {
		return nil
	}
	for _, req := range stockRequests(order) {
		if err := reservation.Release(ctx, tx, req.ProductID, req.Qty); err != nil {
			return err
		}
	}
	return nil
}

// stockRequests maps the order's stock-backed lines to reservation requests.
// Pre-order lines never held stock and are skipped.
func stockRequests(order *models.Order) []reservation.Request {
	requests := make([]reservation.Request, 0, len(order.Items))
	for _, item := range order.Items {
		if item.IsPreOrder || item.ProductID == nil {
			continue
		}
		requests = append(requests, reservation.Request{ProductID: *item.ProductID, Qty: item.Qty})
	}
	return requests
}
