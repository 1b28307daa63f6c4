package cart

import (
	"fmt"
	"testing"
)

func TestBuildSummaryPreservesOrderAndValues(t *testing.T) {
	c := &Cart{
		ID: "gid://shopify/Cart/abc",
		Lines: []Line{
			{
				ID:       "line-1",
				Quantity: 2,
				Cost:     LineCost{TotalAmount: Money{Amount: "450.00", CurrencyCode: "EUR"}},
				Merchandise: Merchandise{
					Title:   "30x40cm",
					Product: Product{Title: "Sunset"},
					Image:   &Image{URL: "https://x/y.jpg"},
				},
			},
			{
				ID:       "line-2",
				Quantity: 1,
				Cost:     LineCost{TotalAmount: Money{Amount: "120.50", CurrencyCode: "EUR"}},
				Merchandise: Merchandise{
					Title:   "20x30cm",
					Product: Product{Title: "Harbour"},
				},
			},
		},
	}

	items := BuildSummary(c)

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	first := items[0]
	if first.ProductTitle != "Sunset" || first.VariantTitle != "30x40cm" {
		t.Fatalf("unexpected first item titles: %+v", first)
	}
	if first.Quantity != 2 {
		t.Fatalf("quantity must be copied verbatim, got %d", first.Quantity)
	}
	if first.Price != "450.00" {
		t.Fatalf("price must be copied verbatim, got %q", first.Price)
	}
	if first.ImageURL != "https://x/y.jpg" {
		t.Fatalf("unexpected image url %q", first.ImageURL)
	}
	if items[1].ProductTitle != "Harbour" {
		t.Fatalf("order must be preserved, got %q second", items[1].ProductTitle)
	}
	if items[1].ImageURL != "" {
		t.Fatalf("lines without an image must yield an empty image url, got %q", items[1].ImageURL)
	}
}

func TestBuildSummaryKeepsDuplicateProductLinesDistinct(t *testing.T) {
	line := Line{
		Quantity:    1,
		Cost:        LineCost{TotalAmount: Money{Amount: "450.00", CurrencyCode: "EUR"}},
		Merchandise: Merchandise{Title: "30x40cm", Product: Product{Title: "Sunset"}},
	}
	c := &Cart{Lines: []Line{line, line}}

	items := BuildSummary(c)
	if len(items) != 2 {
		t.Fatalf("duplicate lines must not be aggregated, got %d items", len(items))
	}
}

func TestBuildSummaryLengthMatchesLineCount(t *testing.T) {
	for _, n := range []int{0, 1, 3, 25} {
		c := &Cart{}
		for i := 0; i < n; i++ {
			c.Lines = append(c.Lines, Line{
				ID:       fmt.Sprintf("line-%d", i),
				Quantity: i + 1,
			})
		}
		items := BuildSummary(c)
		if len(items) != n {
			t.Fatalf("cart with %d lines produced %d items", n, len(items))
		}
		for i, item := range items {
			if item.Quantity != i+1 {
				t.Fatalf("item %d quantity mismatch: %d", i, item.Quantity)
			}
		}
	}
}

func TestBuildSummaryEmptyCart(t *testing.T) {
	items := BuildSummary(&Cart{})
	if items == nil {
		t.Fatal("empty cart must yield an empty slice, not nil")
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}

	if got := BuildSummary(nil); got == nil || len(got) != 0 {
		t.Fatalf("nil cart must yield an empty slice, got %v", got)
	}
}
