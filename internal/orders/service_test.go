package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	"github.com/beemsaisuoy/my-salon-app/pkg/enums"
	pkgerrors "github.com/beemsaisuoy/my-salon-app/pkg/errors"
	"github.com/beemsaisuoy/my-salon-app/pkg/pagination"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	dsn := "file:orders_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	svc, err := NewService(NewRepository(db), gormTxRunner{db: db})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, db
}

func seedOrder(t *testing.T, db *gorm.DB, order models.Order) models.Order {
	t.Helper()
	if order.CustomerID == uuid.Nil {
		order.CustomerID = uuid.New()
	}
	if order.CustomerName == "" {
		order.CustomerName = "มะลิ"
	}
	if order.Status == "" {
		order.Status = enums.OrderStatusPending
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = enums.PaymentMethodPayAtStore
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func seedProduct(t *testing.T, db *gorm.DB, stock int) models.Product {
	t.Helper()
	product := models.Product{Name: "คุกกี้", Category: "cookie", PriceSatang: 6500, Stock: stock, IsActive: true}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func productStock(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()
	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return product.Stock
}

func TestUpdateStatusSkipsDeductionWhenAlreadyTaken(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	ctx := context.Background()
	product := seedProduct(t, db, 8)
	productID := product.ID
	order := seedOrder(t, db, models.Order{
		StockDeducted:  true,
		SubtotalSatang: 13000,
		TotalSatang:    13910,
		Items:          []models.OrderItem{{ProductID: &productID, Name: product.Name, UnitPriceSatang: 6500, Qty: 2, TotalSatang: 13000}},
	})

	updated, err := svc.UpdateStatus(ctx, order.ID, StatusUpdateInput{Status: "prepared"})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != enums.OrderStatusPrepared {
		t.Fatalf("expected prepared, got %s", updated.Status)
	}

	// Checkout already took the stock; the transition must not take it again.
	if got := productStock(t, db, product.ID); got != 8 {
		t.Fatalf("expected stock to stay at 8, got %d", got)
	}
}

func TestUpdateStatusDeductsExactlyOnceForLegacyOrders(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	ctx := context.Background()
	product := seedProduct(t, db, 8)
	productID := product.ID
	order := seedOrder(t, db, models.Order{
		StockDeducted:  false,
		SubtotalSatang: 13000,
		TotalSatang:    13910,
		Items:          []models.OrderItem{{ProductID: &productID, Name: product.Name, UnitPriceSatang: 6500, Qty: 2, TotalSatang: 13000}},
	})

	if _, err := svc.UpdateStatus(ctx, order.ID, StatusUpdateInput{Status: "prepared"}); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if got := productStock(t, db, product.ID); got != 6 {
		t.Fatalf("expected stock 6 after deduction, got %d", got)
	}

	// Moving further along the flow must never deduct again.
	if _, err := svc.UpdateStatus(ctx, order.ID, StatusUpdateInput{Status: "ready"}); err != nil {
		t.Fatalf("update to ready: %v", err)
	}
	if got := productStock(t, db, product.ID); got != 6 {
		t.Fatalf("expected stock still 6, got %d", got)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, "id = ?", order.ID).Error; err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if !reloaded.StockDeducted {
		t.Fatal("expected stock_deducted flag set")
	}
}

func TestUpdateStatusRejectsIllegalTransitions(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	ctx := context.Background()

	completed := seedOrder(t, db, models.Order{Status: enums.OrderStatusCompleted, StockDeducted: true})
	_, err := svc.UpdateStatus(ctx, completed.ID, StatusUpdateInput{Status: "pending"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	ready := seedOrder(t, db, models.Order{Status: enums.OrderStatusReady, StockDeducted: true})
	_, err = svc.UpdateStatus(ctx, ready.ID, StatusUpdateInput{Status: "pending"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict for backwards move, got %v", err)
	}

	_, err = svc.UpdateStatus(ctx, ready.ID, StatusUpdateInput{Status: "shipped"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestCancelReleasesStockOnce(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	ctx := context.Background()
	product := seedProduct(t, db, 6)
	productID := product.ID
	customerID := uuid.New()
	order := seedOrder(t, db, models.Order{
		CustomerID:    customerID,
		StockDeducted: true,
		Items:         []models.OrderItem{{ProductID: &productID, Name: product.Name, UnitPriceSatang: 6500, Qty: 2, TotalSatang: 13000}},
	})

	actor := Actor{UserID: customerID, Role: enums.UserRoleCustomer}
	cancelled, err := svc.Cancel(ctx, actor, order.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != enums.OrderStatusCancelled || cancelled.CancelledAt == nil {
		t.Fatalf("unexpected cancel result: %+v", cancelled)
	}
	if got := productStock(t, db, product.ID); got != 8 {
		t.Fatalf("expected stock back at 8, got %d", got)
	}

	// Cancelling again must fail and must not release more stock.
	if _, err := svc.Cancel(ctx, actor, order.ID); err == nil {
		t.Fatal("expected error on second cancel")
	}
	if got := productStock(t, db, product.ID); got != 8 {
		t.Fatalf("expected stock unchanged at 8, got %d", got)
	}
}

func TestCancelPreOrderLinesDoNotReturnStock(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	ctx := context.Background()
	product := seedProduct(t, db, 0)
	productID := product.ID
	customerID := uuid.New()
	order := seedOrder(t, db, models.Order{
		CustomerID:    customerID,
		StockDeducted: true,
		Items:         []models.OrderItem{{ProductID: &productID, Name: product.Name, UnitPriceSatang: 6500, Qty: 3, TotalSatang: 19500, IsPreOrder: true}},
	})

	if _, err := svc.Cancel(ctx, Actor{UserID: customerID, Role: enums.UserRoleCustomer}, order.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got := productStock(t, db, product.ID); got != 0 {
		t.Fatalf("expected stock to stay 0 for pre-order, got %d", got)
	}
}

func TestCustomerCannotTouchOthersOrders(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	ctx := context.Background()
	order := seedOrder(t, db, models.Order{})

	stranger := Actor{UserID: uuid.New(), Role: enums.UserRoleCustomer}
	if _, err := svc.Get(ctx, stranger, order.ID); err == nil {
		t.Fatal("expected not found for stranger")
	}
	if _, err := svc.Cancel(ctx, stranger, order.ID); err == nil {
		t.Fatal("expected not found on cancel")
	}

	admin := Actor{UserID: uuid.New(), Role: enums.UserRoleAdmin}
	if _, err := svc.Get(ctx, admin, order.ID); err != nil {
		t.Fatalf("admin get: %v", err)
	}
}

func TestListScopesToCustomer(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	ctx := context.Background()
	mine := uuid.New()
	seedOrder(t, db, models.Order{CustomerID: mine})
	seedOrder(t, db, models.Order{CustomerID: mine, Status: enums.OrderStatusReady, StockDeducted: true})
	seedOrder(t, db, models.Order{})

	page, err := svc.List(ctx, Actor{UserID: mine, Role: enums.UserRoleCustomer}, ListInput{Pagination: pagination.Params{Limit: 10}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Orders) != 2 {
		t.Fatalf("expected 2 own orders, got %d", len(page.Orders))
	}

	adminPage, err := svc.List(ctx, Actor{UserID: uuid.New(), Role: enums.UserRoleAdmin}, ListInput{Pagination: pagination.Params{Limit: 10}})
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(adminPage.Orders) != 3 {
		t.Fatalf("expected 3 orders for admin, got %d", len(adminPage.Orders))
	}

	status := "ready"
	filtered, err := svc.List(ctx, Actor{UserID: mine, Role: enums.UserRoleCustomer}, ListInput{Status: &status, Pagination: pagination.Params{Limit: 10}})
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(filtered.Orders) != 1 {
		t.Fatalf("expected 1 ready order, got %d", len(filtered.Orders))
	}
}
