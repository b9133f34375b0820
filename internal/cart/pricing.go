package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/beemsaisuoy/my-salon-app/pkg/errors"
)

// Line is a priced cart entry. UnitPriceSatang is the snapshot price the
// totals are computed from, never a live catalog read.
type Line struct {
	ProductID       uuid.UUID
	Name            string
	UnitPriceSatang int
	Qty             int
}

// Totals carries the derived amounts for a cart. Money fields are satang.
type Totals struct {
	ItemCount      int
	SubtotalSatang int
	TaxSatang      int
	TotalSatang    int
}

var satangPerUnit = decimal.NewFromInt(100)

// LineTotalSatang returns the extended price of a single line.
func (l Line) LineTotalSatang() int {
	return l.UnitPriceSatang * l.Qty
}

// ComputeTotals derives subtotal, tax, and grand total from priced lines.
// taxRatePercent is a percentage (7 means 7%); the tax amount is rounded to
// whole satang with half-up rounding so 21.695 becomes 21.70 baht.
func ComputeTotals(lines []Line, taxRatePercent decimal.Decimal) (Totals, error) {
	if taxRatePercent.IsNegative() {
		return Totals{}, pkgerrors.New(pkgerrors.CodeValidation, "tax rate must not be negative")
	}

	subtotal := 0
	itemCount := 0
	for _, line := range lines {
		if line.Qty <= 0 {
			return Totals{}, pkgerrors.New(pkgerrors.CodeValidation, "line quantity must be positive")
		}
		if line.UnitPriceSatang < 0 {
			return Totals{}, pkgerrors.New(pkgerrors.CodeValidation, "line price must not be negative")
		}
		itemCount += line.Qty
		subtotal += line.LineTotalSatang()
	}

	tax := taxSatang(subtotal, taxRatePercent)
	return Totals{
		ItemCount:      itemCount,
		SubtotalSatang: subtotal,
		TaxSatang:      tax,
		TotalSatang:    subtotal + tax,
	}, nil
}

// taxSatang computes round-half-up(subtotal * rate / 100) in whole satang.
// decimal.Round uses half-up for non-negative values.
func taxSatang(subtotalSatang int, ratePercent decimal.Decimal) int {
	if subtotalSatang == 0 || ratePercent.IsZero() {
		return 0
	}
	amount := decimal.NewFromInt(int64(subtotalSatang)).
		Mul(ratePercent).
		Div(decimal.NewFromInt(100))
	return int(amount.Round(0).IntPart())
}

// BahtString formats a satang amount as a baht string with two decimals,
// e.g. 33170 -> "331.70". Used in notification messages.
func BahtString(satang int) string {
	return decimal.NewFromInt(int64(satang)).Div(satangPerUnit).StringFixed(2)
}
