package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/codr1/leagueapi/internal/config"
	"github.com/codr1/leagueapi/internal/email"
	"github.com/codr1/leagueapi/internal/ratelimit"
	"github.com/codr1/leagueapi/internal/testutil"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "League API"
	cfg.App.CORSOrigins = []string{"http://localhost:3000"}
	cfg.Auth.TokenTTL = time.Hour
	cfg.Features.EnableMetrics = true

	limiter := ratelimit.New(&ratelimit.Config{RequestsPerSecond: 1000, Burst: 1000, LoginMaxAttempts: 5, LoginLockout: time.Minute})
	t.Cleanup(limiter.Close)

	initHandlers(cfg, testutil.NewTestDB(t), email.LogSender{}, limiter)
	return newHandler(cfg)
}

func do(h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndIndex(t *testing.T) {
	h := newTestHandler(t)

	if rec := do(h, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("expected health OK, got %d %q", rec.Code, rec.Body.String())
	}
	rec := do(h, http.MethodGet, "/", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"endpoints"`) {
		t.Fatalf("expected JSON index, got %d %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header")
	}
	if rec := do(h, http.MethodGet, "/nope", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown path, got %d", rec.Code)
	}
}

func TestWritesRequireToken(t *testing.T) {
	h := newTestHandler(t)

	if rec := do(h, http.MethodPost, "/api/v1/leagues", "", `{"name":"NBA"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec := do(h, http.MethodPost, "/api/v1/auth/signup", "", `{"username":"coach","password":"correct-horse","email":"coach@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected signup 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var signup struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &signup); err != nil || signup.Token == "" {
		t.Fatalf("expected token in signup response, got %s", rec.Body.String())
	}

	if rec := do(h, http.MethodPost, "/api/v1/leagues", signup.Token, `{"name":"NBA"}`); rec.Code != http.StatusCreated {
		t.Fatalf("expected league create 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := do(h, http.MethodGet, "/api/v1/leagues", "", ""); !strings.Contains(rec.Body.String(), `"NBA"`) {
		t.Fatalf("expected public league list, got %s", rec.Body.String())
	}
	if rec := do(h, http.MethodGet, "/api/v1/auth/test-token", "bogus", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown token, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestHandler(t)

	do(h, http.MethodGet, "/api/v1/standings", "", "")
	rec := do(h, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "leagueapi_http_requests_total") {
		t.Fatalf("expected request counter in metrics, got %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name    string
		headers string
	}{
		{"authorization", "authorization"},
		{"content type", "content-type"},
		{"both", "authorization,content-type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/leagues", nil)
			req.Header.Set("Origin", "http://localhost:3000")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			req.Header.Set("Access-Control-Request-Headers", tt.headers)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
				t.Fatalf("expected allowed origin, got %q", got)
			}
		})
	}
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/leagues", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allowed origin, got %q", got)
	}
}

func TestIndexListsEveryRoute(t *testing.T) {
	h := newTestHandler(t)

	cfg := &config.Config{}
	cfg.Features.EnableMetrics = true

	rec := do(h, http.MethodGet, "/api/v1/index", "", "")
	var payload struct {
		Endpoints []struct {
			Method string `json:"method"`
			Path   string `json:"path"`
			Auth   bool   `json:"auth"`
		} `json:"endpoints"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode index: %v", err)
	}
	listed := make(map[string]bool, len(payload.Endpoints))
	for _, e := range payload.Endpoints {
		listed[e.Method+" "+e.Path] = e.Auth
	}

	for _, rt := range routes(cfg) {
		if rt.pattern == "GET /{$}" {
			continue
		}
		auth, ok := listed[rt.pattern]
		if !ok {
			t.Fatalf("expected %s on the index", rt.pattern)
		}
		if auth != rt.private {
			t.Fatalf("expected auth=%v for %s, got %v", rt.private, rt.pattern, auth)
		}
	}
	if len(payload.Endpoints) != len(routes(cfg))-1 {
		t.Fatalf("expected %d listed endpoints, got %d", len(routes(cfg))-1, len(payload.Endpoints))
	}
}

func TestMetricsRouteOnlyWhenEnabled(t *testing.T) {
	cfg := &config.Config{}
	for _, rt := range routes(cfg) {
		if rt.pattern == "GET /metrics" {
			t.Fatalf("expected no metrics route when disabled")
		}
	}
}
