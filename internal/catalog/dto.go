package catalog

import (
	"github.com/google/uuid"

	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	"github.com/beemsaisuoy/my-salon-app/pkg/pagination"
)

// ProductInput is the admin payload for creating or updating a product.
type ProductInput struct {
	Name              string  `json:"name" validate:"required,max=200"`
	Description       *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category          string  `json:"category" validate:"required"`
	PriceSatang       int     `json:"price_satang" validate:"gte=0"`
	Stock             int     `json:"stock" validate:"gte=0"`
	PreOrderDays      int     `json:"pre_order_days" validate:"gte=0,lte=60"`
	LowStockThreshold int     `json:"low_stock_threshold" validate:"gte=0"`
	ImageURL          *string `json:"image_url,omitempty" validate:"omitempty,url"`
	IsActive          *bool   `json:"is_active,omitempty"`
}

// ServiceInput is the admin payload for creating or updating a salon service.
type ServiceInput struct {
	Name            string  `json:"name" validate:"required,max=200"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category        string  `json:"category" validate:"required"`
	PriceSatang     int     `json:"price_satang" validate:"gte=0"`
	DurationMinutes int     `json:"duration_minutes" validate:"gt=0,lte=480"`
	ImageURL        *string `json:"image_url,omitempty" validate:"omitempty,url"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	Category        *string
	IncludeInactive bool
	Pagination      pagination.Params
}

// ServiceFilter narrows salon service listings.
type ServiceFilter struct {
	Category        *string
	IncludeInactive bool
}

// ProductPage is a cursor-paginated product listing.
type ProductPage struct {
	Products   []models.Product `json:"products"`
	NextCursor *string          `json:"next_cursor,omitempty"`
}

// StockAdjustment sets a product's absolute stock level.
type StockAdjustment struct {
	ProductID uuid.UUID `json:"-"`
	Stock     int       `json:"stock" validate:"gte=0"`
}
