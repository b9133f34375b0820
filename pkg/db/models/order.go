package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beemsaisuoy/my-salon-app/pkg/enums"
)

// Order is a bakery order assembled at checkout. Money columns hold satang.
// StockDeducted guards against deducting stock twice for the same order: it
// is set at checkout when stock was taken, and checked again when an admin
// moves the order into preparation.
type Order struct {
	ID uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	// OrderNumber is assigned by the database (identity column).
	OrderNumber    int64               `gorm:"column:order_number;->;default:0"`
	CustomerID     uuid.UUID           `gorm:"column:customer_id;type:uuid;not null;index"`
	CustomerName   string              `gorm:"column:customer_name;not null"`
	CustomerPhone  *string             `gorm:"column:customer_phone"`
	Status         enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'pending'"`
	PaymentMethod  enums.PaymentMethod `gorm:"column:payment_method;type:text;not null;default:'pay_at_store'"`
	PickupDate     *time.Time          `gorm:"column:pickup_date"`
	SubtotalSatang int                 `gorm:"column:subtotal_satang;not null"`
	TaxSatang      int                 `gorm:"column:tax_satang;not null;default:0"`
	TotalSatang    int                 `gorm:"column:total_satang;not null"`
	StockDeducted  bool                `gorm:"column:stock_deducted;not null;default:false"`
	Note           *string             `gorm:"column:note"`
	CancelledAt    *time.Time          `gorm:"column:cancelled_at"`
	CompletedAt    *time.Time          `gorm:"column:completed_at"`
	Items          []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem captures the priced snapshot of each line within an order.
// UnitPriceSatang is the catalog price at checkout time; later catalog edits
// do not touch it.
type OrderItem struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	OrderID         uuid.UUID  `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID       *uuid.UUID `gorm:"column:product_id;type:uuid"`
	Name            string     `gorm:"column:name;not null"`
	UnitPriceSatang int        `gorm:"column:unit_price_satang;not null"`
	Qty             int        `gorm:"column:qty;not null"`
	TotalSatang     int        `gorm:"column:total_satang;not null"`
	IsPreOrder      bool       `gorm:"column:is_pre_order;not null;default:false"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
