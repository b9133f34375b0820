package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettingsRowID is the primary key of the singleton settings row.
const SettingsRowID = 1

// ShopSettings is a single-row table holding shop-wide configuration.
// TaxRatePercent is a percentage (7.00 means 7%) applied to order subtotals.
type ShopSettings struct {
	ID                 int             `gorm:"column:id;primaryKey"`
	ShopName           string          `gorm:"column:shop_name;not null;default:''"`
	TaxRatePercent     decimal.Decimal `gorm:"column:tax_rate_percent;type:numeric(5,2);not null;default:7"`
	NotifyBookingNew   bool            `gorm:"column:notify_booking_new;not null;default:true"`
	NotifyOrderNew     bool            `gorm:"column:notify_order_new;not null;default:true"`
	NotifyLowStock     bool            `gorm:"column:notify_low_stock;not null;default:true"`
	NotifyBookingToday bool            `gorm:"column:notify_booking_today;not null;default:true"`
	NotifyPendingLong  bool            `gorm:"column:notify_pending_long;not null;default:true"`
	LineNotifyToken    *string         `gorm:"column:line_notify_token"`
	PromptPayNumber    *string         `gorm:"column:promptpay_number"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// DefaultShopSettings returns the row inserted when none exists yet.
func DefaultShopSettings() ShopSettings {
	return ShopSettings{
		ID:                 SettingsRowID,
		TaxRatePercent:     decimal.NewFromInt(7),
		NotifyBookingNew:   true,
		NotifyOrderNew:     true,
		NotifyLowStock:     true,
		NotifyBookingToday: true,
		NotifyPendingLong:  true,
	}
}
