package products

import (
	"sort"
	"strings"

	"github.com/galleryhaus/gallery-backend/pkg/storefront"
)

// Sort keys accepted by the listing. Anything else leaves the input order.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
)

// Options selects and orders a fetched product page.
type Options struct {
	Sort          string
	AvailableOnly bool
	MinPrice      *float64
	MaxPrice      *float64
}

// Apply filters then sorts the products. The input slice is never mutated;
// sorts are stable so equal keys keep their storefront order.
func Apply(items []storefront.Product, opts Options) []storefront.Product {
	out := filter(items, opts)
	sortProducts(out, opts.Sort)
	return out
}

func filter(items []storefront.Product, opts Options) []storefront.Product {
	out := make([]storefront.Product, 0, len(items))
	for _, p := range items {
		if opts.AvailableOnly && !p.AvailableForSale {
			continue
		}
		if opts.MinPrice != nil || opts.MaxPrice != nil {
			price := minPrice(p)
			if opts.MinPrice != nil && price < *opts.MinPrice {
				continue
			}
			if opts.MaxPrice != nil && price > *opts.MaxPrice {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func sortProducts(items []storefront.Product, key string) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return minPrice(items[i]) < minPrice(items[j])
		})
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return minPrice(items[i]) > minPrice(items[j])
		})
	case SortNameAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.Compare(items[i].Title, items[j].Title) < 0
		})
	case SortNameDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.Compare(items[i].Title, items[j].Title) > 0
		})
	}
}

// minPrice treats unparseable amounts as zero so a bad record sorts low
// instead of breaking the listing.
func minPrice(p storefront.Product) float64 {
	f, err := p.PriceRange.MinVariantPrice.Amount.Float64()
	if err != nil {
		return 0
	}
	return f
}
