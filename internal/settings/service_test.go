package settings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	pkgerrors "github.com/beemsaisuoy/my-salon-app/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	dsn := "file:settings_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.ShopSettings{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestGetCreatesDefaultRow(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	settings, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !settings.TaxRatePercent.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("expected default tax rate 7, got %s", settings.TaxRatePercent)
	}
	if !settings.NotifyOrderNew {
		t.Fatal("expected notifications enabled by default")
	}

	// A second read must reuse the same row.
	again, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if again.ID != settings.ID {
		t.Fatalf("expected singleton row, got ids %d and %d", settings.ID, again.ID)
	}
}

func TestUpdateTaxRateTakesEffectImmediately(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	rate := "10.50"
	if _, err := svc.Update(ctx, UpdateInput{TaxRatePercent: &rate}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.TaxRatePercent(ctx)
	if err != nil {
		t.Fatalf("tax rate: %v", err)
	}
	if !got.Equal(decimal.NewFromFloat(10.5)) {
		t.Fatalf("expected 10.5, got %s", got)
	}
}

func TestUpdateRejectsBadTaxRate(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	for _, rate := range []string{"-1", "101", "abc"} {
		value := rate
		_, err := svc.Update(ctx, UpdateInput{TaxRatePercent: &value})
		if err == nil {
			t.Fatalf("expected error for rate %q", rate)
		}
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("unexpected error for rate %q: %v", rate, err)
		}
	}
}

func TestUpdateTogglesAndToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	off := false
	token := "line-token-123"
	updated, err := svc.Update(ctx, UpdateInput{NotifyLowStock: &off, LineNotifyToken: &token})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.NotifyLowStock {
		t.Fatal("expected low stock notifications off")
	}
	if updated.LineNotifyToken == nil || *updated.LineNotifyToken != token {
		t.Fatalf("unexpected token: %v", updated.LineNotifyToken)
	}

	// Untouched fields keep their values.
	if !updated.NotifyOrderNew {
		t.Fatal("expected order notifications still on")
	}
}
