package reservation

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	pkgerrors "github.com/beemsaisuoy/my-salon-app/pkg/errors"
)

func TestReserveDecrementsStock(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	cookie := seedProduct(t, db, models.Product{Name: "คุกกี้", PriceSatang: 6500, Stock: 3, IsActive: true})
	cake := seedProduct(t, db, models.Product{Name: "เค้ก", PriceSatang: 18000, Stock: 1, IsActive: true})

	err := db.Transaction(func(tx *gorm.DB) error {
		results, terr := Reserve(ctx, tx, []Request{
			{ProductID: cookie.ID, Qty: 3},
			{ProductID: cake.ID, Qty: 1},
		})
		if terr != nil {
			return terr
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
		for _, res := range results {
			if res.PreOrder {
				t.Fatalf("expected stock reservation, got pre-order for %s", res.ProductID)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("reserve transaction: %v", err)
	}

	if got := reloadStock(t, db, cookie.ID); got != 0 {
		t.Fatalf("expected cookie stock 0, got %d", got)
	}
	if got := reloadStock(t, db, cake.ID); got != 0 {
		t.Fatalf("expected cake stock 0, got %d", got)
	}
}

func TestReserveShortfallFailsWholeTransaction(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	cookie := seedProduct(t, db, models.Product{Name: "คุกกี้", PriceSatang: 6500, Stock: 5, IsActive: true})
	croissant := seedProduct(t, db, models.Product{Name: "ครัวซองค์", PriceSatang: 9000, Stock: 3, IsActive: true})

	err := db.Transaction(func(tx *gorm.DB) error {
		_, terr := Reserve(ctx, tx, []Request{
			{ProductID: cookie.ID, Qty: 2},
			{ProductID: croissant.ID, Qty: 4},
		})
		return terr
	})
	if err == nil {
		t.Fatal("expected out of stock error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeOutOfStock {
		t.Fatalf("unexpected error: %v", err)
	}

	// Rollback must restore the cookie decrement taken before the failure.
	if got := reloadStock(t, db, cookie.ID); got != 5 {
		t.Fatalf("expected cookie stock back at 5, got %d", got)
	}
	if got := reloadStock(t, db, croissant.ID); got != 3 {
		t.Fatalf("expected croissant stock untouched at 3, got %d", got)
	}
}

func TestReserveFallsBackToPreOrder(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	custom := seedProduct(t, db, models.Product{Name: "เค้กสั่งทำ", PriceSatang: 45000, Stock: 0, PreOrderDays: 3, IsActive: true})

	err := db.Transaction(func(tx *gorm.DB) error {
		results, terr := Reserve(ctx, tx, []Request{{ProductID: custom.ID, Qty: 2}})
		if terr != nil {
			return terr
		}
		if len(results) != 1 || !results[0].PreOrder || results[0].PreOrderDays != 3 {
			t.Fatalf("expected pre-order result, got %+v", results)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("reserve transaction: %v", err)
	}

	// Pre-orders never mutate stock.
	if got := reloadStock(t, db, custom.ID); got != 0 {
		t.Fatalf("expected stock unchanged at 0, got %d", got)
	}
}

func TestReserveSequentialContention(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	cake := seedProduct(t, db, models.Product{Name: "เค้ก", PriceSatang: 18000, Stock: 1, IsActive: true})

	first := db.Transaction(func(tx *gorm.DB) error {
		_, terr := Reserve(ctx, tx, []Request{{ProductID: cake.ID, Qty: 1}})
		return terr
	})
	if first != nil {
		t.Fatalf("first reservation: %v", first)
	}

	second := db.Transaction(func(tx *gorm.DB) error {
		_, terr := Reserve(ctx, tx, []Request{{ProductID: cake.ID, Qty: 1}})
		return terr
	})
	if second == nil {
		t.Fatal("expected second reservation to fail")
	}
	if typed := pkgerrors.As(second); typed == nil || typed.Code() != pkgerrors.CodeOutOfStock {
		t.Fatalf("unexpected error: %v", second)
	}
}

func TestReserveInactiveProduct(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	retired := seedProduct(t, db, models.Product{Name: "เมนูเก่า", PriceSatang: 5000, Stock: 10, IsActive: false})

	err := db.Transaction(func(tx *gorm.DB) error {
		_, terr := Reserve(ctx, tx, []Request{{ProductID: retired.ID, Qty: 1}})
		return terr
	})
	if err == nil {
		t.Fatal("expected not found error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReserveInvalidQty(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()

	err := db.Transaction(func(tx *gorm.DB) error {
		_, terr := Reserve(ctx, tx, []Request{{ProductID: uuid.New(), Qty: 0}})
		return terr
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReleaseRestoresStock(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	cookie := seedProduct(t, db, models.Product{Name: "คุกกี้", PriceSatang: 6500, Stock: 5, IsActive: true})

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, terr := Reserve(ctx, tx, []Request{{ProductID: cookie.ID, Qty: 4}}); terr != nil {
			return terr
		}
		return nil
	})
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return Release(ctx, tx, cookie.ID, 4)
	})
	if err != nil {
		t.Fatalf("release: %v", err)
	}

	if got := reloadStock(t, db, cookie.ID); got != 5 {
		t.Fatalf("expected stock restored to 5, got %d", got)
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:reservation_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate products: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, product models.Product) models.Product {
	t.Helper()
	product.Category = "cookie"
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func reloadStock(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()
	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return product.Stock
}
