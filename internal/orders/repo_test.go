package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	"github.com/beemsaisuoy/my-salon-app/pkg/enums"
)

func newRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:orders_repo_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.OrderItem{}))
	return db
}

func TestClaimStockDeductionFlipsOnce(t *testing.T) {
	t.Parallel()
	db := newRepoTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := models.Order{
		CustomerID:    uuid.New(),
		CustomerName:  "มะลิ",
		Status:        enums.OrderStatusPending,
		PaymentMethod: enums.PaymentMethodPayAtStore,
	}
	require.NoError(t, db.Create(&order).Error)

	claimed, err := repo.ClaimStockDeduction(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, claimed, "first claim should win")

	again, err := repo.ClaimStockDeduction(ctx, order.ID)
	require.NoError(t, err)
	assert.False(t, again, "second claim must be a no-op")

	released, err := repo.ReleaseStockClaim(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, released)

	releasedAgain, err := repo.ReleaseStockClaim(ctx, order.ID)
	require.NoError(t, err)
	assert.False(t, releasedAgain, "stock must only be returned once")
}

func TestListPendingOlderThanFiltersByStatusAndAge(t *testing.T) {
	t.Parallel()
	db := newRepoTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	stale := models.Order{
		CustomerID:    uuid.New(),
		CustomerName:  "สมชาย",
		Status:        enums.OrderStatusPending,
		PaymentMethod: enums.PaymentMethodPayAtStore,
	}
	require.NoError(t, db.Create(&stale).Error)
	require.NoError(t, db.Model(&models.Order{}).
		Where("id = ?", stale.ID).
		UpdateColumn("created_at", now.Add(-2*time.Hour)).Error)

	fresh := models.Order{
		CustomerID:    uuid.New(),
		CustomerName:  "สมหญิง",
		Status:        enums.OrderStatusPending,
		PaymentMethod: enums.PaymentMethodPromptPayTransfer,
	}
	require.NoError(t, db.Create(&fresh).Error)

	prepared := models.Order{
		CustomerID:    uuid.New(),
		CustomerName:  "มานี",
		Status:        enums.OrderStatusPrepared,
		PaymentMethod: enums.PaymentMethodPayAtStore,
	}
	require.NoError(t, db.Create(&prepared).Error)
	require.NoError(t, db.Model(&models.Order{}).
		Where("id = ?", prepared.ID).
		UpdateColumn("created_at", now.Add(-3*time.Hour)).Error)

	got, err := repo.ListPendingOlderThan(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, stale.ID, got[0].ID)
}
