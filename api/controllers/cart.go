package controllers

import (
	"context"
	"net/http"

	"github.com/galleryhaus/gallery-backend/api/responses"
	"github.com/galleryhaus/gallery-backend/internal/cart"
	pkgerrors "github.com/galleryhaus/gallery-backend/pkg/errors"
	"github.com/galleryhaus/gallery-backend/pkg/logger"
)

// CartFetcher is the slice of the storefront client the cart endpoint needs.
type CartFetcher interface {
	FetchCart(ctx context.Context, id string) (*cart.Cart, error)
}

// CartFetch proxies a cart lookup to the storefront and attaches the
// flattened summary the inquiry widget renders.
func CartFetch(client CartFetcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront client unavailable"))
			return
		}

		id := r.URL.Query().Get("id")
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart id required"))
			return
		}

		fetched, err := client.FetchCart(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartResponse{
			Cart:        fetched,
			CartSummary: cart.BuildSummary(fetched),
		})
	}
}

type cartResponse struct {
	Cart        *cart.Cart         `json:"cart"`
	CartSummary []cart.SummaryItem `json:"cartSummary"`
}
