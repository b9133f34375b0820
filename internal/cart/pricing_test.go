package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/beemsaisuoy/my-salon-app/pkg/errors"
)

func TestComputeTotalsDefaultRate(t *testing.T) {
	t.Parallel()

	// Two cookies at 65 baht plus one cake at 180 baht.
	lines := []Line{
		{ProductID: uuid.New(), Name: "คุกกี้ช็อกชิพ", UnitPriceSatang: 6500, Qty: 2},
		{ProductID: uuid.New(), Name: "เค้กมะพร้าว", UnitPriceSatang: 18000, Qty: 1},
	}

	totals, err := ComputeTotals(lines, decimal.NewFromInt(7))
	if err != nil {
		t.Fatalf("compute totals: %v", err)
	}
	if totals.SubtotalSatang != 31000 {
		t.Fatalf("expected subtotal 31000, got %d", totals.SubtotalSatang)
	}
	if totals.TaxSatang != 2170 {
		t.Fatalf("expected tax 2170, got %d", totals.TaxSatang)
	}
	if totals.TotalSatang != 33170 {
		t.Fatalf("expected total 33170, got %d", totals.TotalSatang)
	}
}

func TestComputeTotalsRoundsHalfUp(t *testing.T) {
	t.Parallel()

	// 150 satang at 7% = 10.5 satang, which must round up to 11.
	totals, err := ComputeTotals([]Line{{ProductID: uuid.New(), UnitPriceSatang: 150, Qty: 1}}, decimal.NewFromInt(7))
	if err != nil {
		t.Fatalf("compute totals: %v", err)
	}
	if totals.TaxSatang != 11 {
		t.Fatalf("expected tax 11, got %d", totals.TaxSatang)
	}
	if totals.TotalSatang != 161 {
		t.Fatalf("expected total 161, got %d", totals.TotalSatang)
	}
}

func TestComputeTotalsZeroRate(t *testing.T) {
	t.Parallel()

	totals, err := ComputeTotals([]Line{{ProductID: uuid.New(), UnitPriceSatang: 6500, Qty: 3}}, decimal.Zero)
	if err != nil {
		t.Fatalf("compute totals: %v", err)
	}
	if totals.TaxSatang != 0 {
		t.Fatalf("expected zero tax, got %d", totals.TaxSatang)
	}
	if totals.TotalSatang != totals.SubtotalSatang {
		t.Fatalf("expected total to equal subtotal, got %d vs %d", totals.TotalSatang, totals.SubtotalSatang)
	}
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	t.Parallel()

	totals, err := ComputeTotals(nil, decimal.NewFromInt(7))
	if err != nil {
		t.Fatalf("compute totals: %v", err)
	}
	if totals.SubtotalSatang != 0 || totals.TaxSatang != 0 || totals.TotalSatang != 0 {
		t.Fatalf("expected all-zero totals, got %+v", totals)
	}
}

func TestComputeTotalsFractionalRate(t *testing.T) {
	t.Parallel()

	// 10000 satang at 7.25% = 725 satang exactly.
	rate := decimal.NewFromFloat(7.25)
	totals, err := ComputeTotals([]Line{{ProductID: uuid.New(), UnitPriceSatang: 10000, Qty: 1}}, rate)
	if err != nil {
		t.Fatalf("compute totals: %v", err)
	}
	if totals.TaxSatang != 725 {
		t.Fatalf("expected tax 725, got %d", totals.TaxSatang)
	}
}

func TestComputeTotalsRejectsInvalidLines(t *testing.T) {
	t.Parallel()

	cases := map[string][]Line{
		"zero qty":       {{ProductID: uuid.New(), UnitPriceSatang: 100, Qty: 0}},
		"negative qty":   {{ProductID: uuid.New(), UnitPriceSatang: 100, Qty: -1}},
		"negative price": {{ProductID: uuid.New(), UnitPriceSatang: -100, Qty: 1}},
	}
	for name, lines := range cases {
		if _, err := ComputeTotals(lines, decimal.NewFromInt(7)); err == nil {
			t.Fatalf("%s: expected validation error", name)
		} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
	}
}

func TestComputeTotalsRejectsNegativeRate(t *testing.T) {
	t.Parallel()

	_, err := ComputeTotals([]Line{{ProductID: uuid.New(), UnitPriceSatang: 100, Qty: 1}}, decimal.NewFromInt(-1))
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestBahtString(t *testing.T) {
	t.Parallel()

	if got := BahtString(33170); got != "331.70" {
		t.Fatalf("expected 331.70, got %s", got)
	}
	if got := BahtString(0); got != "0.00" {
		t.Fatalf("expected 0.00, got %s", got)
	}
}
