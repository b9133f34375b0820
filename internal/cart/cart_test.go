package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestAddLineMergesByProduct(t *testing.T) {
	t.Parallel()

	cookie := uuid.New()
	cake := uuid.New()

	var c Cart
	c.AddLine(cookie, "คุกกี้ช็อกชิพ", 6500, 1)
	c.AddLine(cake, "เค้กมะพร้าว", 18000, 1)
	c.AddLine(cookie, "คุกกี้ช็อกชิพ", 6500, 1)

	lines := c.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].ProductID != cookie || lines[0].Qty != 2 {
		t.Fatalf("expected cookie line merged to qty 2, got %+v", lines[0])
	}
	if c.ItemCount() != 3 {
		t.Fatalf("expected item count 3, got %d", c.ItemCount())
	}
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	t.Parallel()

	cookie := uuid.New()

	var c Cart
	c.AddLine(cookie, "คุกกี้", 6500, 2)
	c.SetQuantity(cookie, 5)
	if got := c.Lines()[0].Qty; got != 5 {
		t.Fatalf("expected qty 5, got %d", got)
	}

	c.SetQuantity(cookie, 0)
	if len(c.Lines()) != 0 {
		t.Fatalf("expected empty cart after zero quantity")
	}

	// Unknown product ids are a no-op.
	c.SetQuantity(uuid.New(), 3)
	if len(c.Lines()) != 0 {
		t.Fatalf("expected set on unknown product to do nothing")
	}
}

func TestRemoveLineIsIdempotent(t *testing.T) {
	t.Parallel()

	cookie := uuid.New()

	var c Cart
	c.AddLine(cookie, "คุกกี้", 6500, 1)
	c.RemoveLine(cookie)
	c.RemoveLine(cookie)
	if len(c.Lines()) != 0 {
		t.Fatalf("expected empty cart after removals")
	}
}

func TestCartTotalsRecomputedEachCall(t *testing.T) {
	t.Parallel()

	var c Cart
	c.AddLine(uuid.New(), "คุกกี้", 6500, 2)
	c.AddLine(uuid.New(), "เค้ก", 18000, 1)

	totals, err := c.Totals(decimal.NewFromInt(7))
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.TotalSatang != 33170 {
		t.Fatalf("expected total 33170, got %d", totals.TotalSatang)
	}

	c.Clear()
	totals, err = c.Totals(decimal.NewFromInt(7))
	if err != nil {
		t.Fatalf("totals after clear: %v", err)
	}
	if totals.SubtotalSatang != 0 || totals.TaxSatang != 0 || totals.TotalSatang != 0 {
		t.Fatalf("expected zero totals after clear, got %+v", totals)
	}
}
