package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beemsaisuoy/my-salon-app/pkg/enums"
)

// Product represents a bakery catalog listing. Prices are stored in satang.
// Stock is the on-hand count decremented by checkout; PreOrderDays > 0 means
// the item can still be ordered when stock runs out.
type Product struct {
	ID                uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	Name              string                `gorm:"column:name;not null"`
	Description       *string               `gorm:"column:description"`
	Category          enums.ProductCategory `gorm:"column:category;type:text;not null"`
	PriceSatang       int                   `gorm:"column:price_satang;not null"`
	Stock             int                   `gorm:"column:stock;not null;default:0"`
	PreOrderDays      int                   `gorm:"column:pre_order_days;not null;default:0"`
	LowStockThreshold int                   `gorm:"column:low_stock_threshold;not null;default:5"`
	ImageURL          *string               `gorm:"column:image_url"`
	IsActive          bool                  `gorm:"column:is_active;not null;default:true"`
	CreatedAt         time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
