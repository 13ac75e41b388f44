package apicors

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestParseOrigins(t *testing.T) {
	got := ParseOrigins(" https://a.example , ,https://b.example")
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseOrigins() = %v, want %v", got, want)
	}
	if ParseOrigins("") != nil {
		t.Error("ParseOrigins(\"\") should be nil")
	}
}

func TestMiddleware_AnyOrigin(t *testing.T) {
	h := Middleware(nil)(okHandler)
	req := httptest.NewRequest(http.MethodGet, "/api/flags", nil)
	req.Header.Set("Origin", "https://x.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Allow-Origin = %q, want *", rec.Header().Get("Access-Control-Allow-Origin"))
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestMiddleware_AllowList(t *testing.T) {
	h := Middleware([]string{"https://app.example"})(okHandler)

	tests := []struct {
		origin string
		want   string
	}{
		{"https://app.example", "https://app.example"},
		{"https://evil.example", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/flags", nil)
		req.Header.Set("Origin", tt.origin)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Errorf("origin %q: Allow-Origin = %q, want %q", tt.origin, got, tt.want)
		}
	}
}

func TestMiddleware_Preflight(t *testing.T) {
	h := Middleware(nil)(okHandler)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/flags", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}
}
