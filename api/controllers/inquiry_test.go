package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	inquirysvc "github.com/galleryhaus/gallery-backend/internal/inquiry"
	"github.com/galleryhaus/gallery-backend/pkg/mail"
	"github.com/galleryhaus/gallery-backend/pkg/types"
)

type captureSender struct {
	calls    int
	lastSent mail.Message
	err      error
}

func (s *captureSender) Send(ctx context.Context, msg mail.Message) error {
	s.calls++
	s.lastSent = msg
	return s.err
}

type stubInquiryService struct {
	cartCalls    int
	contactCalls int
	lastCart     inquirysvc.CartInquiry
	err          error
}

func (s *stubInquiryService) RelayCartInquiry(ctx context.Context, in inquirysvc.CartInquiry) error {
	s.cartCalls++
	s.lastCart = in
	return s.err
}

func (s *stubInquiryService) RelayContactMessage(ctx context.Context, in inquirysvc.ContactMessage) error {
	s.contactCalls++
	return s.err
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/email", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

const validInquiryBody = `{
	"email": "anna@example.com",
	"name": "Anna",
	"message": "Is the large format still available?",
	"cartSummary": [
		{"productTitle": "Sunset No. 4", "variantTitle": "60x80cm", "quantity": 1, "price": "950.0", "currencyCode": "EUR"}
	]
}`

func TestInquiryRelaySuccess(t *testing.T) {
	svc := &stubInquiryService{}
	resp := postJSON(t, InquiryRelay(svc, nil), validInquiryBody)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body types.MessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Message != "Email sent successfully" {
		t.Fatalf("unexpected success message %q", body.Message)
	}
	if svc.cartCalls != 1 {
		t.Fatalf("expected exactly one relay call, got %d", svc.cartCalls)
	}
	if svc.lastCart.Email != "anna@example.com" || len(svc.lastCart.Items) != 1 {
		t.Fatalf("payload not forwarded intact: %+v", svc.lastCart)
	}
	if svc.lastCart.Items[0].Price != "950.0" {
		t.Fatalf("price must be forwarded verbatim, got %q", svc.lastCart.Items[0].Price)
	}
}

func TestInquiryRelayNumericPriceAccepted(t *testing.T) {
	svc := &stubInquiryService{}
	body := `{"email":"a@b.com","name":"A","cartSummary":[{"productTitle":"P","variantTitle":"V","quantity":2,"price":450}]}`
	resp := postJSON(t, InquiryRelay(svc, nil), body)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastCart.Items[0].Price != "450" {
		t.Fatalf("numeric price must keep its literal text, got %q", svc.lastCart.Items[0].Price)
	}
}

func TestInquiryRelayMissingFields(t *testing.T) {
	cases := map[string]string{
		"no email":        `{"name":"Anna","cartSummary":[]}`,
		"blank email":     `{"email":"  ","name":"Anna","cartSummary":[]}`,
		"email without @": `{"email":"anna.example.com","name":"Anna","cartSummary":[]}`,
		"no name":         `{"email":"anna@example.com","cartSummary":[]}`,
		"no cart summary": `{"email":"anna@example.com","name":"Anna"}`,
		"not json":        `name=Anna&email=anna@example.com`,
	}

	for label, body := range cases {
		t.Run(label, func(t *testing.T) {
			mailer := &captureSender{}
			svc, err := inquirysvc.NewService(mailer, nil)
			if err != nil {
				t.Fatalf("build service: %v", err)
			}

			resp := postJSON(t, InquiryRelay(svc, nil), body)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
			}

			var errBody types.ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if errBody.Error != "Missing required fields" {
				t.Fatalf("unexpected error message %q", errBody.Error)
			}
			if mailer.calls != 0 {
				t.Fatalf("no send may happen on invalid input, got %d", mailer.calls)
			}
		})
	}
}

func TestInquiryRelayEmptyCartAllowed(t *testing.T) {
	svc := &stubInquiryService{}
	body := `{"email":"anna@example.com","name":"Anna","cartSummary":[]}`
	resp := postJSON(t, InquiryRelay(svc, nil), body)

	if resp.Code != http.StatusOK {
		t.Fatalf("empty cart summary is valid, got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastCart.Items == nil || len(svc.lastCart.Items) != 0 {
		t.Fatalf("expected empty non-nil items, got %#v", svc.lastCart.Items)
	}
}

func TestInquiryRelayTransportFailure(t *testing.T) {
	mailer := &captureSender{err: context.DeadlineExceeded}
	svc, err := inquirysvc.NewService(mailer, nil)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	resp := postJSON(t, InquiryRelay(svc, nil), validInquiryBody)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", resp.Code, resp.Body.String())
	}

	var errBody types.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if errBody.Error != "Failed to send email" {
		t.Fatalf("unexpected error message %q", errBody.Error)
	}
}

func TestInquiryRelayForwardsSummaryOrder(t *testing.T) {
	svc := &stubInquiryService{}
	body := `{"email":"a@b.com","name":"A","cartSummary":[
		{"productTitle":"First","variantTitle":"V","quantity":1,"price":"1"},
		{"productTitle":"Second","variantTitle":"V","quantity":1,"price":"2"},
		{"productTitle":"First","variantTitle":"V","quantity":1,"price":"1"}
	]}`
	resp := postJSON(t, InquiryRelay(svc, nil), body)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	want := []string{"First", "Second", "First"}
	if len(svc.lastCart.Items) != len(want) {
		t.Fatalf("duplicate lines must stay distinct, got %d items", len(svc.lastCart.Items))
	}
	for i, item := range svc.lastCart.Items {
		if item.ProductTitle != want[i] {
			t.Fatalf("item %d: expected %q, got %q", i, want[i], item.ProductTitle)
		}
	}
}
