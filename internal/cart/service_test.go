package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	pkgerrors "github.com/beemsaisuoy/my-salon-app/pkg/errors"
)

type fakeProductFinder struct {
	products []models.Product
	err      error
}

func (f *fakeProductFinder) FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	return f.products, f.err
}

type fakeTaxRates struct {
	rate decimal.Decimal
}

func (f *fakeTaxRates) TaxRatePercent(ctx context.Context) (decimal.Decimal, error) {
	return f.rate, nil
}

func TestQuotePricesFromCatalog(t *testing.T) {
	t.Parallel()

	cookie := models.Product{ID: uuid.New(), Name: "คุกกี้ช็อกชิพ", PriceSatang: 6500, Stock: 10}
	cake := models.Product{ID: uuid.New(), Name: "เค้กมะพร้าว", PriceSatang: 18000, Stock: 2}
	svc, err := NewService(
		&fakeProductFinder{products: []models.Product{cookie, cake}},
		&fakeTaxRates{rate: decimal.NewFromInt(7)},
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	quote, err := svc.Quote(context.Background(), QuoteInput{Items: []QuoteItem{
		{ProductID: cookie.ID, Qty: 2},
		{ProductID: cake.ID, Qty: 1},
	}})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if quote.SubtotalSatang != 31000 || quote.TaxSatang != 2170 || quote.TotalSatang != 33170 {
		t.Fatalf("unexpected totals: %+v", quote)
	}
	if len(quote.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(quote.Lines))
	}
	if quote.Lines[0].Availability != AvailabilityInStock {
		t.Fatalf("expected first line in stock, got %s", quote.Lines[0].Availability)
	}
	if quote.TaxRatePercent != "7.00" {
		t.Fatalf("unexpected tax rate: %s", quote.TaxRatePercent)
	}
}

func TestQuoteMergesDuplicateLines(t *testing.T) {
	t.Parallel()

	cookie := models.Product{ID: uuid.New(), Name: "คุกกี้", PriceSatang: 6500, Stock: 10}
	svc, _ := NewService(
		&fakeProductFinder{products: []models.Product{cookie}},
		&fakeTaxRates{rate: decimal.Zero},
	)

	quote, err := svc.Quote(context.Background(), QuoteInput{Items: []QuoteItem{
		{ProductID: cookie.ID, Qty: 1},
		{ProductID: cookie.ID, Qty: 2},
	}})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if len(quote.Lines) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(quote.Lines))
	}
	if quote.Lines[0].Qty != 3 || quote.SubtotalSatang != 19500 {
		t.Fatalf("unexpected merged quote: %+v", quote.Lines[0])
	}
}

func TestQuoteFlagsPreOrderAndOutOfStock(t *testing.T) {
	t.Parallel()

	preOrder := models.Product{ID: uuid.New(), Name: "เค้กสั่งทำ", PriceSatang: 45000, Stock: 0, PreOrderDays: 3}
	soldOut := models.Product{ID: uuid.New(), Name: "ครัวซองค์", PriceSatang: 9000, Stock: 1}
	svc, _ := NewService(
		&fakeProductFinder{products: []models.Product{preOrder, soldOut}},
		&fakeTaxRates{rate: decimal.NewFromInt(7)},
	)

	quote, err := svc.Quote(context.Background(), QuoteInput{Items: []QuoteItem{
		{ProductID: preOrder.ID, Qty: 1},
		{ProductID: soldOut.ID, Qty: 2},
	}})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if quote.Lines[0].Availability != AvailabilityPreOrder {
		t.Fatalf("expected pre_order, got %s", quote.Lines[0].Availability)
	}
	if quote.Lines[1].Availability != AvailabilityOutOfStock {
		t.Fatalf("expected out_of_stock, got %s", quote.Lines[1].Availability)
	}
}

func TestQuoteUnknownProduct(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(&fakeProductFinder{}, &fakeTaxRates{rate: decimal.NewFromInt(7)})

	_, err := svc.Quote(context.Background(), QuoteInput{Items: []QuoteItem{{ProductID: uuid.New(), Qty: 1}}})
	if err == nil {
		t.Fatal("expected not found error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQuoteEmptyCart(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(&fakeProductFinder{}, &fakeTaxRates{rate: decimal.NewFromInt(7)})

	_, err := svc.Quote(context.Background(), QuoteInput{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
}
