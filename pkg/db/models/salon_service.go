package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beemsaisuoy/my-salon-app/pkg/enums"
)

// SalonService is a bookable treatment offered by the salon.
type SalonService struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	Name            string                `gorm:"column:name;not null"`
	Description     *string               `gorm:"column:description"`
	Category        enums.ServiceCategory `gorm:"column:category;type:text;not null"`
	PriceSatang     int                   `gorm:"column:price_satang;not null"`
	DurationMinutes int                   `gorm:"column:duration_minutes;not null;default:60"`
	ImageURL        *string               `gorm:"column:image_url"`
	IsActive        bool                  `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (s *SalonService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
