package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/galleryhaus/gallery-backend/pkg/types"
)

type fakeStore struct {
	counts map[string]int64
	keys   []string
	err    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{counts: map[string]int64{}}
}

func (f *fakeStore) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.keys = append(f.keys, key)
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeStore) RateLimitKey(scope string) string {
	return "gbh:rate_limit:" + scope
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func postInquiry(t *testing.T, handler http.Handler, email string) *httptest.ResponseRecorder {
	t.Helper()
	body := `{"email":"` + email + `","name":"A"}`
	req := httptest.NewRequest(http.MethodPost, "/api/email", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.7:1234"
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func TestRateLimitAllowsUnderLimit(t *testing.T) {
	store := newFakeStore()
	policy := NewRateLimitPolicy("inquiry", time.Minute, 3, 3)
	handler := RateLimit(policy, store, nil)(okHandler())

	for i := 0; i < 3; i++ {
		if resp := postInquiry(t, handler, "a@b.com"); resp.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, resp.Code)
		}
	}
}

func TestRateLimitBlocksOverIPLimit(t *testing.T) {
	store := newFakeStore()
	policy := NewRateLimitPolicy("inquiry", time.Minute, 2, 0)
	handler := RateLimit(policy, store, nil)(okHandler())

	postInquiry(t, handler, "a@b.com")
	postInquiry(t, handler, "a@b.com")
	resp := postInquiry(t, handler, "a@b.com")

	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}

	var body types.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Error != "rate limit exceeded" {
		t.Fatalf("unexpected error message %q", body.Error)
	}
}

func TestRateLimitBlocksOverEmailLimitAcrossIPs(t *testing.T) {
	store := newFakeStore()
	policy := NewRateLimitPolicy("inquiry", time.Minute, 0, 1)
	handler := RateLimit(policy, store, nil)(okHandler())

	if resp := postInquiry(t, handler, "a@b.com"); resp.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", resp.Code)
	}
	if resp := postInquiry(t, handler, "A@B.com "); resp.Code != http.StatusTooManyRequests {
		t.Fatalf("normalized email should share the window, got %d", resp.Code)
	}
}

func TestRateLimitCountersUseStoreNamespace(t *testing.T) {
	store := newFakeStore()
	policy := NewRateLimitPolicy("inquiry", time.Minute, 3, 3)
	handler := RateLimit(policy, store, nil)(okHandler())

	postInquiry(t, handler, "a@b.com")

	if len(store.keys) != 2 {
		t.Fatalf("expected an ip and an email counter, got %v", store.keys)
	}
	if !strings.HasPrefix(store.keys[0], "gbh:rate_limit:inquiry:ip:") {
		t.Fatalf("ip counter outside the store namespace: %q", store.keys[0])
	}
	if !strings.HasPrefix(store.keys[1], "gbh:rate_limit:inquiry:email:") {
		t.Fatalf("email counter outside the store namespace: %q", store.keys[1])
	}
	if strings.Contains(store.keys[1], "a@b.com") {
		t.Fatalf("email counter must store a hash, not the address: %q", store.keys[1])
	}
}

func TestRateLimitPreservesBodyForNextHandler(t *testing.T) {
	store := newFakeStore()
	policy := NewRateLimitPolicy("inquiry", time.Minute, 0, 5)

	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Email string `json:"email"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		seen = payload.Email
	})
	handler := RateLimit(policy, store, nil)(inner)

	postInquiry(t, handler, "a@b.com")
	if seen != "a@b.com" {
		t.Fatalf("body must be replayable downstream, handler saw %q", seen)
	}
}

func TestRateLimitDisabledWithoutStore(t *testing.T) {
	policy := NewRateLimitPolicy("inquiry", time.Minute, 1, 1)
	handler := RateLimit(policy, nil, nil)(okHandler())

	for i := 0; i < 5; i++ {
		if resp := postInquiry(t, handler, "a@b.com"); resp.Code != http.StatusOK {
			t.Fatalf("limiter without store must pass through, got %d", resp.Code)
		}
	}
}
