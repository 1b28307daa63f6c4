package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/galleryhaus/gallery-backend/api/responses"
	"github.com/galleryhaus/gallery-backend/internal/products"
	pkgerrors "github.com/galleryhaus/gallery-backend/pkg/errors"
	"github.com/galleryhaus/gallery-backend/pkg/logger"
	"github.com/galleryhaus/gallery-backend/pkg/storefront"
)

// ProductLister is the slice of the storefront client the listing needs.
type ProductLister interface {
	ListProducts(ctx context.Context, params storefront.ListParams) (*storefront.ProductPage, error)
}

// ProductsList fetches a storefront page and applies gallery-side sorting
// and filtering. Filtering happens after the page fetch, so a filtered page
// can carry fewer items than the requested limit.
func ProductsList(client ProductLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront client unavailable"))
			return
		}

		opts, params, err := parseListingQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := client.ListProducts(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, productsResponse{
			Products: products.Apply(page.Products, opts),
			PageInfo: page.PageInfo,
		})
	}
}

type productsResponse struct {
	Products []storefront.Product `json:"products"`
	PageInfo storefront.PageInfo  `json:"pageInfo"`
}

func parseListingQuery(r *http.Request) (products.Options, storefront.ListParams, error) {
	q := r.URL.Query()

	// Unknown sort keys fall back to the storefront's order rather than
	// erroring, mirroring the widget's behavior.
	var opts products.Options
	opts.Sort = q.Get("sort")

	if raw := q.Get("available"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, storefront.ListParams{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid available flag")
		}
		opts.AvailableOnly = v
	}

	var err error
	if opts.MinPrice, err = parsePriceParam(q.Get("min_price"), "min_price"); err != nil {
		return opts, storefront.ListParams{}, err
	}
	if opts.MaxPrice, err = parsePriceParam(q.Get("max_price"), "max_price"); err != nil {
		return opts, storefront.ListParams{}, err
	}

	params := storefront.ListParams{After: q.Get("cursor")}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return opts, storefront.ListParams{}, pkgerrors.New(pkgerrors.CodeValidation, "limit must be a positive integer")
		}
		params.First = limit
	}

	return opts, params, nil
}

func parsePriceParam(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, name+" must be a non-negative number")
	}
	return &v, nil
}
