package importer

import (
	"context"
	"strings"
	"testing"

	"storefront/internal/domain"
)

type captureWriter struct {
	products []domain.Product
	err      error
}

func (c *captureWriter) Upsert(_ context.Context, product domain.Product) (*domain.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.products = append(c.products, product)
	return &product, nil
}

func TestRunImportsRows(t *testing.T) {
	csvData := strings.Join([]string{
		"id,name,description,price,currency,image_url",
		"5f6c1a39-4bc1-4dc5-9026-2e0fb2399001,Widget,A widget,19.99,USD,https://img/widget.png",
		",Gadget,,5.50,,",
	}, "\n")

	writer := &captureWriter{}
	imp := NewCSVImporter(strings.NewReader(csvData), writer)

	imported, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if imported != 2 || len(writer.products) != 2 {
		t.Fatalf("expected 2 imports, got %d (%d captured)", imported, len(writer.products))
	}

	first := writer.products[0]
	if first.ID != "5f6c1a39-4bc1-4dc5-9026-2e0fb2399001" || first.Name != "Widget" {
		t.Fatalf("unexpected first product %+v", first)
	}
	if got := first.Price.Amount.String(); got != "19.99" {
		t.Fatalf("expected price 19.99, got %s", got)
	}

	second := writer.products[1]
	if second.ID != "" {
		t.Fatalf("expected empty id for new product, got %q", second.ID)
	}
	if second.Price.Currency.String() != "USD" {
		t.Fatalf("expected default currency USD, got %s", second.Price.Currency)
	}
}

func TestRunSkipsNamelessRows(t *testing.T) {
	csvData := strings.Join([]string{
		"id,name,price",
		",,10.00",
		",Widget,19.99",
	}, "\n")

	writer := &captureWriter{}
	imp := NewCSVImporter(strings.NewReader(csvData), writer)

	imported, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if imported != 1 {
		t.Fatalf("expected 1 import, got %d", imported)
	}
}

func TestRunRejectsBadPrice(t *testing.T) {
	csvData := strings.Join([]string{
		"name,price",
		"Widget,not-a-number",
	}, "\n")

	imp := NewCSVImporter(strings.NewReader(csvData), &captureWriter{})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected error for invalid price")
	}
}

func TestRunRejectsBadCurrency(t *testing.T) {
	csvData := strings.Join([]string{
		"name,price,currency",
		"Widget,19.99,NOPE",
	}, "\n")

	imp := NewCSVImporter(strings.NewReader(csvData), &captureWriter{})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected error for invalid currency")
	}
}
