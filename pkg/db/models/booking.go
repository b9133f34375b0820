package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beemsaisuoy/my-salon-app/pkg/enums"
)

// Booking is a salon appointment for a single service slot. Service name and
// price are snapshotted so later catalog edits do not change the booking.
type Booking struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID    uuid.UUID           `gorm:"column:customer_id;type:uuid;not null;index"`
	CustomerName  string              `gorm:"column:customer_name;not null"`
	CustomerPhone *string             `gorm:"column:customer_phone"`
	ServiceID     uuid.UUID           `gorm:"column:service_id;type:uuid;not null"`
	ServiceName   string              `gorm:"column:service_name;not null"`
	PriceSatang   int                 `gorm:"column:price_satang;not null"`
	Date          string              `gorm:"column:date;type:text;not null;index"`
	TimeSlot      string              `gorm:"column:time_slot;type:text;not null"`
	Status        enums.BookingStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Note          *string             `gorm:"column:note"`
	CancelledAt   *time.Time          `gorm:"column:cancelled_at"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
