package requestid

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMiddleware_GeneratesID(t *testing.T) {
	var seen string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if seen == "" {
		t.Fatal("expected a request id in the context")
	}
	if got := rec.Header().Get(Header); got != seen {
		t.Errorf("response header %q, context id %q", got, seen)
	}
}

func TestMiddleware_HonorsInboundID(t *testing.T) {
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := FromContext(r.Context()); got != "abc-123" {
			t.Errorf("context id = %q, want abc-123", got)
		}
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(Header, "abc-123")
	h.ServeHTTP(httptest.NewRecorder(), req)
}

func TestFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if got := FromContext(req.Context()); got != "" {
		t.Errorf("expected empty id, got %q", got)
	}
}
