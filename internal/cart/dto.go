package cart

import "github.com/google/uuid"

// Availability describes how a quoted line can be fulfilled.
type Availability string

const (
	// AvailabilityInStock means current stock covers the requested quantity.
	AvailabilityInStock Availability = "in_stock"
	// AvailabilityPreOrder means stock is short but the product accepts
	// pre-orders with a lead time.
	AvailabilityPreOrder Availability = "pre_order"
	// AvailabilityOutOfStock means the line cannot be fulfilled at all.
	AvailabilityOutOfStock Availability = "out_of_stock"
)

// QuoteItem is an unpriced cart entry sent by the storefront.
type QuoteItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Qty       int       `json:"qty" validate:"required,gt=0"`
}

// QuoteInput is the request payload for a cart quote.
type QuoteInput struct {
	Items []QuoteItem `json:"items" validate:"required,min=1,max=50,dive"`
}

// QuoteLine is a priced line in the quote response.
type QuoteLine struct {
	ProductID       uuid.UUID    `json:"product_id"`
	Name            string       `json:"name"`
	UnitPriceSatang int          `json:"unit_price_satang"`
	Qty             int          `json:"qty"`
	TotalSatang     int          `json:"total_satang"`
	Availability    Availability `json:"availability"`
	PreOrderDays    int          `json:"pre_order_days,omitempty"`
}

// Quote is the server-priced view of a cart.
type Quote struct {
	Lines          []QuoteLine `json:"lines"`
	ItemCount      int         `json:"item_count"`
	SubtotalSatang int         `json:"subtotal_satang"`
	TaxSatang      int         `json:"tax_satang"`
	TotalSatang    int         `json:"total_satang"`
	TaxRatePercent string      `json:"tax_rate_percent"`
}
