package settings

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	pkgerrors "github.com/beemsaisuoy/my-salon-app/pkg/errors"
)

// UpdateInput is the admin payload for changing shop settings. Pointer
// fields left nil keep their current value.
type UpdateInput struct {
	ShopName           *string `json:"shop_name,omitempty" validate:"omitempty,max=200"`
	TaxRatePercent     *string `json:"tax_rate_percent,omitempty"`
	NotifyBookingNew   *bool   `json:"notify_booking_new,omitempty"`
	NotifyOrderNew     *bool   `json:"notify_order_new,omitempty"`
	NotifyLowStock     *bool   `json:"notify_low_stock,omitempty"`
	NotifyBookingToday *bool   `json:"notify_booking_today,omitempty"`
	NotifyPendingLong  *bool   `json:"notify_pending_long,omitempty"`
	LineNotifyToken    *string `json:"line_notify_token,omitempty"`
	PromptPayNumber    *string `json:"promptpay_number,omitempty" validate:"omitempty,max=20"`
}

// Service manages the singleton shop settings row and hands out the tax
// rate to pricing code. The rate is read per request, never cached in a
// package global, so an admin change takes effect immediately.
type Service interface {
	Get(ctx context.Context) (*models.ShopSettings, error)
	Update(ctx context.Context, input UpdateInput) (*models.ShopSettings, error)
	TaxRatePercent(ctx context.Context) (decimal.Decimal, error)
}

type service struct {
	db *gorm.DB
}

// NewService builds a settings service.
func NewService(db *gorm.DB) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("settings db required")
	}
	return &service{db: db}, nil
}

// Get loads the settings row, creating the default one on first use.
func (s *service) Get(ctx context.Context) (*models.ShopSettings, error) {
	row := models.DefaultShopSettings()
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).
		Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "ensure settings row")
	}

	var settings models.ShopSettings
	if err := s.db.WithContext(ctx).First(&settings, "id = ?", models.SettingsRowID).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
	}
	return &settings, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*models.ShopSettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.TaxRatePercent != nil {
		rate, err := decimal.NewFromString(*input.TaxRatePercent)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid tax rate")
		}
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "tax rate must be between 0 and 100")
		}
		settings.TaxRatePercent = rate
	}
	if input.ShopName != nil {
		settings.ShopName = *input.ShopName
	}
	if input.NotifyBookingNew != nil {
		settings.NotifyBookingNew = *input.NotifyBookingNew
	}
	if input.NotifyOrderNew != nil {
		settings.NotifyOrderNew = *input.NotifyOrderNew
	}
	if input.NotifyLowStock != nil {
		settings.NotifyLowStock = *input.NotifyLowStock
	}
	if input.NotifyBookingToday != nil {
		settings.NotifyBookingToday = *input.NotifyBookingToday
	}
	if input.NotifyPendingLong != nil {
		settings.NotifyPendingLong = *input.NotifyPendingLong
	}
	if input.LineNotifyToken != nil {
		settings.LineNotifyToken = input.LineNotifyToken
	}
	if input.PromptPayNumber != nil {
		settings.PromptPayNumber = input.PromptPayNumber
	}

	if err := s.db.WithContext(ctx).Save(settings).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save settings")
	}
	return settings, nil
}

// TaxRatePercent implements the tax rate provider used by cart and checkout.
func (s *service) TaxRatePercent(ctx context.Context) (decimal.Decimal, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return settings.TaxRatePercent, nil
}
