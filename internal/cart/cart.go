package cart

import "github.com/galleryhaus/gallery-backend/pkg/types"

// Money mirrors the storefront money shape: a decimal amount kept as text
// plus an ISO currency code.
type Money struct {
	Amount       types.Decimal `json:"amount"`
	CurrencyCode string        `json:"currencyCode"`
}

// Image is a product or variant image reference.
type Image struct {
	URL string `json:"url"`
}

// Product carries the slice of the storefront product a cart line needs.
type Product struct {
	Title string `json:"title"`
}

// Merchandise is the purchasable variant on a cart line. Its Title is the
// variant title, e.g. "30x40cm".
type Merchandise struct {
	Title   string  `json:"title"`
	Product Product `json:"product"`
	Image   *Image  `json:"image,omitempty"`
}

// LineCost holds the line's total, already multiplied by quantity upstream.
type LineCost struct {
	TotalAmount Money `json:"totalAmount"`
}

// Line is one cart line as owned by the e-commerce platform. Read-only here.
type Line struct {
	ID          string      `json:"id"`
	Quantity    int         `json:"quantity"`
	Cost        LineCost    `json:"cost"`
	Merchandise Merchandise `json:"merchandise"`
}

// Cost aggregates the cart-level amounts.
type Cost struct {
	SubtotalAmount Money `json:"subtotalAmount"`
}

// Cart is the shopper's in-progress selection, fetched from the platform.
type Cart struct {
	ID    string `json:"id"`
	Cost  Cost   `json:"cost"`
	Lines []Line `json:"lines"`
}

// SummaryItem is the flattened, display-ready projection of one cart line
// that goes into the inquiry email.
type SummaryItem struct {
	ProductTitle string        `json:"productTitle"`
	VariantTitle string        `json:"variantTitle"`
	Quantity     int           `json:"quantity"`
	Price        types.Decimal `json:"price"`
	CurrencyCode string        `json:"currencyCode,omitempty"`
	ImageURL     string        `json:"imageUrl,omitempty"`
}

// BuildSummary flattens the cart's lines into summary items: one item per
// line, input order preserved, amounts copied verbatim. Lines for the same
// product stay distinct. An empty or nil cart yields an empty slice.
func BuildSummary(c *Cart) []SummaryItem {
	if c == nil {
		return []SummaryItem{}
	}
	items := make([]SummaryItem, 0, len(c.Lines))
	for _, line := range c.Lines {
		item := SummaryItem{
			ProductTitle: line.Merchandise.Product.Title,
			VariantTitle: line.Merchandise.Title,
			Quantity:     line.Quantity,
			Price:        line.Cost.TotalAmount.Amount,
			CurrencyCode: line.Cost.TotalAmount.CurrencyCode,
		}
		if line.Merchandise.Image != nil {
			item.ImageURL = line.Merchandise.Image.URL
		}
		items = append(items, item)
	}
	return items
}
