// Package inquiryclient is the storefront-side client for the inquiry relay
// endpoint: it packages the form fields and cart summary into one request and
// folds every outcome, including network failure, into a RelayResult the UI
// can render.
package inquiryclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/galleryhaus/gallery-backend/internal/cart"
	"github.com/galleryhaus/gallery-backend/pkg/types"
)

const relayPath = "/api/email"

const (
	// GenericFailure is shown when the endpoint gave no usable error string.
	GenericFailure = "Failed to send inquiry."
	// NetworkFailure is shown when the request never reached the endpoint.
	NetworkFailure = "Could not reach the inquiry service."
)

// Payload is the relay request body. CartSummary is always sent, even when
// empty, so the endpoint can tell "no cart" from "forgot the cart".
type Payload struct {
	Email       string             `json:"email"`
	Name        string             `json:"name"`
	Message     string             `json:"message"`
	CartSummary []cart.SummaryItem `json:"cartSummary"`
}

// RelayResult is the terminal outcome of one submission. Either Message
// (success) or Err (failure) is set, never both.
type RelayResult struct {
	Success    bool
	HTTPStatus int
	Message    string
	Err        string
}

// Client posts inquiries to the relay endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New builds a client for the relay service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit serializes the payload as JSON, posts it, and maps the response.
// It never returns an error: a submission that cannot reach the server is a
// failure result the caller renders, retried only by the shopper explicitly.
func (c *Client) Submit(ctx context.Context, payload Payload) RelayResult {
	if payload.CartSummary == nil {
		payload.CartSummary = []cart.SummaryItem{}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return RelayResult{Err: GenericFailure}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+relayPath, bytes.NewReader(body))
	if err != nil {
		return RelayResult{Err: GenericFailure}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return RelayResult{Err: NetworkFailure}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var success types.MessageResponse
		if err := json.NewDecoder(resp.Body).Decode(&success); err != nil || success.Message == "" {
			return RelayResult{HTTPStatus: resp.StatusCode, Err: GenericFailure}
		}
		return RelayResult{Success: true, HTTPStatus: resp.StatusCode, Message: success.Message}
	}

	var failure types.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&failure); err != nil || failure.Error == "" {
		return RelayResult{HTTPStatus: resp.StatusCode, Err: GenericFailure}
	}
	return RelayResult{HTTPStatus: resp.StatusCode, Err: failure.Error}
}
