package checkout

import (
	"time"

	"github.com/google/uuid"

	"github.com/beemsaisuoy/my-salon-app/internal/cart"
	"github.com/beemsaisuoy/my-salon-app/pkg/enums"
)

// Input is the checkout request payload. Items carry no prices; the server
// reprices everything from the catalog before the order is written.
type Input struct {
	Items         []cart.QuoteItem `json:"items" validate:"required,min=1,max=50,dive"`
	PaymentMethod string           `json:"payment_method" validate:"required"`
	PickupDate    *time.Time       `json:"pickup_date,omitempty"`
	Note          *string          `json:"note,omitempty" validate:"omitempty,max=500"`
	CustomerPhone *string          `json:"customer_phone,omitempty" validate:"omitempty,max=20"`
}

// Customer identifies the buyer placing the order.
type Customer struct {
	ID   uuid.UUID
	Name string
}

// ItemView is an order line in the checkout response.
type ItemView struct {
	ProductID       *uuid.UUID `json:"product_id,omitempty"`
	Name            string     `json:"name"`
	UnitPriceSatang int        `json:"unit_price_satang"`
	Qty             int        `json:"qty"`
	TotalSatang     int        `json:"total_satang"`
	IsPreOrder      bool       `json:"is_pre_order"`
}

// OrderView is the checkout response returned to the storefront.
type OrderView struct {
	OrderID        uuid.UUID           `json:"order_id"`
	OrderNumber    int64               `json:"order_number"`
	Status         enums.OrderStatus   `json:"status"`
	PaymentMethod  enums.PaymentMethod `json:"payment_method"`
	Items          []ItemView          `json:"items"`
	SubtotalSatang int                 `json:"subtotal_satang"`
	TaxSatang      int                 `json:"tax_satang"`
	TotalSatang    int                 `json:"total_satang"`
	CreatedAt      time.Time           `json:"created_at"`
}
