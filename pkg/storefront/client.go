package storefront

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/machinebox/graphql"

	"github.com/galleryhaus/gallery-backend/internal/cart"
	"github.com/galleryhaus/gallery-backend/pkg/config"
	pkgerrors "github.com/galleryhaus/gallery-backend/pkg/errors"
	"github.com/galleryhaus/gallery-backend/pkg/logger"
)

const accessTokenHeader = "X-Shopify-Storefront-Access-Token"

var (
	errEndpointRequired = errors.New("storefront endpoint is required")
	errTokenRequired    = errors.New("storefront access token is required")
)

// Client queries the e-commerce platform's storefront GraphQL API. The cart
// and product schemas are owned by the platform; this client only reads.
type Client struct {
	gql      *graphql.Client
	token    string
	pageSize int
	logg     *logger.Logger
}

// Option customizes the client, mainly for tests.
type Option func(*options)

type options struct {
	httpClient *http.Client
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// NewClient validates the configuration and builds the GraphQL client.
func NewClient(cfg config.StorefrontConfig, logg *logger.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errEndpointRequired
	}
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, errTokenRequired
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	return &Client{
		gql:      graphql.NewClient(cfg.Endpoint, graphql.WithHTTPClient(o.httpClient)),
		token:    cfg.AccessToken,
		pageSize: pageSize,
		logg:     logg,
	}, nil
}

const cartQuery = `
query cart($id: ID!) {
  cart(id: $id) {
    id
    cost {
      subtotalAmount {
        amount
        currencyCode
      }
    }
    lines(first: 100) {
      nodes {
        id
        quantity
        cost {
          totalAmount {
            amount
            currencyCode
          }
        }
        merchandise {
          ... on ProductVariant {
            title
            product {
              title
            }
            image {
              url
            }
          }
        }
      }
    }
  }
}`

type cartQueryResponse struct {
	Cart *struct {
		ID   string    `json:"id"`
		Cost cart.Cost `json:"cost"`
		Lines struct {
			Nodes []cart.Line `json:"nodes"`
		} `json:"lines"`
	} `json:"cart"`
}

// FetchCart resolves the cart by its platform ID. A null cart in the
// response maps to a typed not-found error.
func (c *Client) FetchCart(ctx context.Context, id string) (*cart.Cart, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id required")
	}

	req := c.newRequest(cartQuery)
	req.Var("id", id)

	var resp cartQueryResponse
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		c.logQueryFailure(ctx, "cart", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storefront cart query")
	}
	if resp.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
	}

	return &cart.Cart{
		ID:    resp.Cart.ID,
		Cost:  resp.Cart.Cost,
		Lines: resp.Cart.Lines.Nodes,
	}, nil
}

const productsQuery = `
query products($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    nodes {
      id
      title
      handle
      availableForSale
      priceRange {
        minVariantPrice {
          amount
          currencyCode
        }
      }
      featuredImage {
        url
      }
    }
    pageInfo {
      hasNextPage
      endCursor
    }
  }
}`

// PriceRange carries the minimum variant price used for sorting/filtering.
type PriceRange struct {
	MinVariantPrice cart.Money `json:"minVariantPrice"`
}

// Product is one storefront product projection.
type Product struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	Handle           string      `json:"handle"`
	AvailableForSale bool        `json:"availableForSale"`
	PriceRange       PriceRange  `json:"priceRange"`
	FeaturedImage    *cart.Image `json:"featuredImage,omitempty"`
}

// PageInfo is the platform's opaque cursor pair, threaded through verbatim.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// ProductPage is one page of products.
type ProductPage struct {
	Products []Product `json:"products"`
	PageInfo PageInfo  `json:"pageInfo"`
}

// ListParams selects a page of products.
type ListParams struct {
	First int
	After string
}

type productsQueryResponse struct {
	Products struct {
		Nodes    []Product `json:"nodes"`
		PageInfo PageInfo  `json:"pageInfo"`
	} `json:"products"`
}

// ListProducts fetches one page of products from the storefront.
func (c *Client) ListProducts(ctx context.Context, params ListParams) (*ProductPage, error) {
	first := params.First
	if first <= 0 {
		first = c.pageSize
	}

	req := c.newRequest(productsQuery)
	req.Var("first", first)
	if params.After != "" {
		req.Var("after", params.After)
	}

	var resp productsQueryResponse
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		c.logQueryFailure(ctx, "products", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storefront products query")
	}

	products := resp.Products.Nodes
	if products == nil {
		products = []Product{}
	}
	return &ProductPage{
		Products: products,
		PageInfo: resp.Products.PageInfo,
	}, nil
}

func (c *Client) logQueryFailure(ctx context.Context, query string, err error) {
	if c.logg == nil {
		return
	}
	logCtx := c.logg.WithField(ctx, "query", query)
	c.logg.Error(logCtx, "storefront.query.failed", err)
}

func (c *Client) newRequest(query string) *graphql.Request {
	req := graphql.NewRequest(query)
	req.Header.Set(accessTokenHeader, c.token)
	return req
}
