package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/irsalhamdi/hotwheels-store/api/middleware"
	"github.com/irsalhamdi/hotwheels-store/api/weberr"
	"github.com/irsalhamdi/hotwheels-store/config"
	"github.com/irsalhamdi/hotwheels-store/core/hotwheel"
	"github.com/irsalhamdi/hotwheels-store/database"
	"github.com/irsalhamdi/hotwheels-store/rate"
	"github.com/sirupsen/logrus"
)

// newServer runs the API against a database nobody listens on, so every
// query fails while the process itself stays up.
func newServer(t *testing.T, cfg APIConfig) *httptest.Server {
	t.Helper()

	db, err := database.Open(config.DB{
		Host:         "127.0.0.1:1",
		User:         "postgres",
		Password:     "postgres",
		Name:         "hotwheels",
		DisableTLS:   true,
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg.Log = log
	cfg.DB = db
	if cfg.Session == nil {
		cfg.Session = scs.New()
	}

	srv := httptest.NewServer(APIMux(cfg))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string, dst any) *http.Response {
	t.Helper()

	resp, err := srv.Client().Get(srv.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			t.Fatalf("decoding %s: %v", path, err)
		}
	}
	return resp
}

func TestHealthStaysUpWithoutDatabase(t *testing.T) {
	srv := newServer(t, APIConfig{})

	var h hotwheel.Health
	resp := get(t, srv, "/api/test", &h)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}
	want := hotwheel.Health{Message: "Backend is working!", Database: hotwheel.DBFailed}
	if diff := cmp.Diff(want, h); diff != "" {
		t.Fatalf("health (-want +got):\n%s", diff)
	}
}

func TestDownstreamFailureIsGeneric(t *testing.T) {
	srv := newServer(t, APIConfig{})

	paths := []string{
		"/api/hotwheels",
		"/api/hotwheels?search=red&sort=price&order=desc",
		"/api/hotwheels/6f1c1b9e-3c1e-4e4b-9a53-3b1c7f0b2f10",
		"/api/hotwheels/42",
		"/api/hotwheels/not%20an%20id",
	}
	for _, p := range paths {
		var body weberr.ErrorResponse
		resp := get(t, srv, p, &body)

		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("%s: status %d, want 500", p, resp.StatusCode)
		}
		if body.Error != "Internal Server Error" {
			t.Errorf("%s: body leaks %q", p, body.Error)
		}
		if resp.Header.Get(middleware.RequestIDHeader) == "" {
			t.Errorf("%s: missing request id", p)
		}
	}
}

func TestRejectedBeforeQuery(t *testing.T) {
	srv := newServer(t, APIConfig{})

	tests := []struct {
		path string
		msg  string
	}{
		{"/api/hotwheels?sort=color", "sort must be one of [name series price year]"},
		{"/api/hotwheels?order=sideways", "order must be one of [asc desc]"},
	}
	for _, tt := range tests {
		var body weberr.ErrorResponse
		resp := get(t, srv, tt.path, &body)

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", tt.path, resp.StatusCode)
		}
		if body.Error != tt.msg {
			t.Errorf("%s: got %q, want %q", tt.path, body.Error, tt.msg)
		}
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv := newServer(t, APIConfig{})

	r, err := http.NewRequest(http.MethodGet, srv.URL+"/api/test", nil)
	if err != nil {
		t.Fatal(err)
	}
	r.Header.Set(middleware.RequestIDHeader, "shopper-1")

	resp, err := srv.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if got := resp.Header.Get(middleware.RequestIDHeader); got != "shopper-1" {
		t.Fatalf("request id: got %q", got)
	}
}

func TestCorsPreflight(t *testing.T) {
	const origin = "http://localhost:3000"
	srv := newServer(t, APIConfig{CorsOrigin: origin})

	r, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/cart/items", nil)
	if err != nil {
		t.Fatal(err)
	}
	r.Header.Set("Origin", origin)
	r.Header.Set("Access-Control-Request-Method", http.MethodPut)

	resp, err := srv.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status: got %d, want 204", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != origin {
		t.Fatalf("allow origin: got %q", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("allow credentials: got %q", got)
	}
}

func TestRateLimit(t *testing.T) {
	lim := rate.NewLimiter(2, time.Minute, 0.001)
	defer lim.Stop()

	srv := newServer(t, APIConfig{Limiter: lim})

	for i := 0; i < 2; i++ {
		if resp := get(t, srv, "/api/test", nil); resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: status %d", i, resp.StatusCode)
		}
	}

	var body weberr.ErrorResponse
	resp := get(t, srv, "/api/test", &body)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status: got %d, want 429", resp.StatusCode)
	}
	if !strings.Contains(body.Error, "too many requests") {
		t.Fatalf("body: %q", body.Error)
	}
}

func TestCheckoutNeedsCart(t *testing.T) {
	srv := newServer(t, APIConfig{})

	resp := get(t, srv, "/api/checkout", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("show without checkout: status %d, want 404", resp.StatusCode)
	}

	resp, err := srv.Client().Post(srv.URL+"/api/checkout", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("begin with empty cart: status %d, want 422", resp.StatusCode)
	}

	var sum struct {
		Items []json.RawMessage `json:"items"`
		Count int               `json:"count"`
		Total float64           `json:"total"`
	}
	resp = get(t, srv, "/api/cart", &sum)
	if resp.StatusCode != http.StatusOK || sum.Items == nil || sum.Count != 0 || sum.Total != 0 {
		t.Fatalf("empty cart: status %d, %+v", resp.StatusCode, sum)
	}
}

func TestCartItemIDIsNotInterpreted(t *testing.T) {
	srv := newServer(t, APIConfig{})

	for _, id := range []string{"42", "6f1c1b9e-3c1e-4e4b-9a53-3b1c7f0b2f10"} {
		r, err := http.NewRequest(http.MethodPut, srv.URL+"/api/cart/items", strings.NewReader(`{"id":"`+id+`"}`))
		if err != nil {
			t.Fatal(err)
		}
		r.Header.Set("Content-Type", "application/json")

		resp, err := srv.Client().Do(r)
		if err != nil {
			t.Fatal(err)
		}

		var body weberr.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusInternalServerError || body.Error != "Internal Server Error" {
			t.Fatalf("id %s: status %d, body %q", id, resp.StatusCode, body.Error)
		}
	}
}

func TestCorsOnEveryAnswer(t *testing.T) {
	const origin = "http://localhost:3000"

	lim := rate.NewLimiter(2, time.Minute, 0.001)
	defer lim.Stop()

	srv := newServer(t, APIConfig{CorsOrigin: origin, Limiter: lim})

	// The OPTIONS catch-all matches every path, so an unknown GET may be
	// answered as a method mismatch.
	tests := []struct {
		path   string
		status []int
	}{
		{"/api/nowhere", []int{http.StatusNotFound, http.StatusMethodNotAllowed}},
		{"/api/test", []int{http.StatusOK}},
		{"/api/test", []int{http.StatusTooManyRequests}},
	}
	for _, tt := range tests {
		resp := get(t, srv, tt.path, nil)

		ok := false
		for _, s := range tt.status {
			ok = ok || resp.StatusCode == s
		}
		if !ok {
			t.Fatalf("%s: status %d, want one of %v", tt.path, resp.StatusCode, tt.status)
		}
		if got := resp.Header.Get("Access-Control-Allow-Origin"); got != origin {
			t.Fatalf("%s (%d): allow origin %q", tt.path, resp.StatusCode, got)
		}
	}
}

func TestUnmatchedRoutes(t *testing.T) {
	srv := newServer(t, APIConfig{})

	tests := []struct {
		path   string
		status int
		msg    string
	}{
		{"/api/nowhere", http.StatusNotFound, "the resource could not be found"},
		{"/api/checkout/next", http.StatusMethodNotAllowed, "Method Not Allowed"},
	}
	for _, tt := range tests {
		var body weberr.ErrorResponse
		resp := get(t, srv, tt.path, &body)

		if resp.StatusCode != tt.status || body.Error != tt.msg {
			t.Errorf("%s: got %d %q, want %d %q", tt.path, resp.StatusCode, body.Error, tt.status, tt.msg)
		}
		if resp.Header.Get(middleware.RequestIDHeader) == "" {
			t.Errorf("%s: missing request id", tt.path)
		}
	}
}
