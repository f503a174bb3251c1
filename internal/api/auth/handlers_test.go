package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/codr1/leagueapi/internal/api/authz"
	"github.com/codr1/leagueapi/internal/config"
	appdb "github.com/codr1/leagueapi/internal/db"
	"github.com/codr1/leagueapi/internal/ratelimit"
	"github.com/codr1/leagueapi/internal/testutil"
)

type recordingSender struct {
	mu    sync.Mutex
	sent  []string
	ready chan struct{}
}

func (s *recordingSender) Send(ctx context.Context, recipient, subject, body string) error {
	s.mu.Lock()
	s.sent = append(s.sent, recipient)
	s.mu.Unlock()
	select {
	case s.ready <- struct{}{}:
	default:
	}
	return nil
}

func setupAuthTest(t *testing.T, ttl time.Duration) (*appdb.DB, *recordingSender) {
	t.Helper()

	db := testutil.NewTestDB(t)

	prevDatabase, prevQueries, prevConfig, prevSender, prevLimiter := database, queries, appConfig, emailSender, limiter
	t.Cleanup(func() {
		database, queries, appConfig, emailSender, limiter = prevDatabase, prevQueries, prevConfig, prevSender, prevLimiter
	})

	cfg := &config.Config{}
	cfg.App.Name = "League"
	cfg.Auth.TokenTTL = ttl

	rl := ratelimit.New(&ratelimit.Config{
		RequestsPerSecond: 1000,
		Burst:             1000,
		LoginMaxAttempts:  3,
		LoginLockout:      time.Minute,
	})
	t.Cleanup(rl.Close)

	sender := &recordingSender{ready: make(chan struct{}, 1)}
	InitHandlers(db, cfg, sender, rl)
	return db, sender
}

func postJSON(handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeToken(t *testing.T, rec *httptest.ResponseRecorder) tokenResponse {
	t.Helper()
	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode token response: %v (body %s)", err, rec.Body.String())
	}
	return resp
}

func signup(t *testing.T, username string) tokenResponse {
	t.Helper()
	rec := postJSON(HandleSignup, "/api/v1/auth/signup",
		`{"username":"`+username+`","password":"hunter22!","email":"`+username+`@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	return decodeToken(t, rec)
}

func TestSignupIssuesTokenAndSendsWelcome(t *testing.T) {
	_, sender := setupAuthTest(t, 0)

	resp := signup(t, "coach")
	if len(resp.Token) != 40 {
		t.Fatalf("expected 40 character token, got %q", resp.Token)
	}
	if resp.User.Username != "coach" || resp.User.Email != "coach@example.com" {
		t.Fatalf("unexpected user %+v", resp.User)
	}

	select {
	case <-sender.ready:
	case <-time.After(time.Second):
		t.Fatal("expected welcome email to be sent")
	}
	sender.mu.Lock()
	defer sender.mu.Unlock()
	if len(sender.sent) != 1 || sender.sent[0] != "coach@example.com" {
		t.Fatalf("unexpected recipients %v", sender.sent)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	setupAuthTest(t, 0)
	signup(t, "coach")

	rec := postJSON(HandleSignup, "/api/v1/auth/signup",
		`{"username":"coach","password":"hunter22!","email":"other@example.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestSignupValidation(t *testing.T) {
	setupAuthTest(t, 0)

	bodies := []string{
		`{"username":"","password":"hunter22!","email":"a@example.com"}`,
		`{"username":"coach","password":"short","email":"a@example.com"}`,
		`{"username":"coach","password":"hunter22!","email":"not-an-email"}`,
		`{"username":"coach","password":"hunter22!","email":"a@example.com","is_staff":true}`,
	}
	for _, body := range bodies {
		if rec := postJSON(HandleSignup, "/api/v1/auth/signup", body); rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400 for %s, got %d", body, rec.Code)
		}
	}
}

func TestLoginReturnsExistingToken(t *testing.T) {
	setupAuthTest(t, 0)
	created := signup(t, "coach")

	rec := postJSON(HandleLogin, "/api/v1/auth/login", `{"username":"coach","password":"hunter22!"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := decodeToken(t, rec); got.Token != created.Token {
		t.Fatalf("expected existing token %q, got %q", created.Token, got.Token)
	}
}

func TestLoginUnknownUserIsUnauthorized(t *testing.T) {
	setupAuthTest(t, 0)

	rec := postJSON(HandleLogin, "/api/v1/auth/login", `{"username":"ghost","password":"hunter22!"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid credentials") {
		t.Fatalf("expected invalid credentials message, got %s", rec.Body.String())
	}
}

func TestLoginUnknownUserStillComparesHash(t *testing.T) {
	setupAuthTest(t, 0)

	prev := compareHash
	t.Cleanup(func() { compareHash = prev })
	var calls int
	compareHash = func(hash, password []byte) error {
		calls++
		return prev(hash, password)
	}

	rec := postJSON(HandleLogin, "/api/v1/auth/login", `{"username":"ghost","password":"hunter22!"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	if calls != 1 {
		t.Fatalf("expected one bcrypt comparison for unknown user, got %d", calls)
	}
}

func TestLoginLockout(t *testing.T) {
	setupAuthTest(t, 0)
	signup(t, "coach")

	for i := 0; i < 3; i++ {
		rec := postJSON(HandleLogin, "/api/v1/auth/login", `{"username":"coach","password":"wrong-pass"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected status 401, got %d", i+1, rec.Code)
		}
	}

	rec := postJSON(HandleLogin, "/api/v1/auth/login", `{"username":"coach","password":"hunter22!"}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429 after lockout, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}

func TestLogoutDeletesToken(t *testing.T) {
	setupAuthTest(t, 0)
	created := signup(t, "coach")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token "+created.Token)
	user, err := UserFromRequest(req)
	if err != nil || user == nil {
		t.Fatalf("expected token to resolve, got %v (%v)", user, err)
	}

	logoutReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	logoutReq = logoutReq.WithContext(authz.ContextWithUser(logoutReq.Context(), user))
	rec := httptest.NewRecorder()
	HandleLogout(rec, logoutReq)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if _, err := UserFromRequest(req); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}
}

func TestTestTokenRequiresUser(t *testing.T) {
	setupAuthTest(t, 0)

	rec := httptest.NewRecorder()
	HandleTestToken(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/test-token", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/test-token", nil)
	req = req.WithContext(authz.ContextWithUser(req.Context(), &authz.AuthUser{ID: 1, Email: "coach@example.com"}))
	rec = httptest.NewRecorder()
	HandleTestToken(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Login successful for coach@example.com") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestUserFromRequestExpiredToken(t *testing.T) {
	db, _ := setupAuthTest(t, time.Hour)
	created := signup(t, "coach")

	if _, err := db.ExecContext(context.Background(),
		"UPDATE auth_tokens SET created_at = ?", time.Now().Add(-2*time.Hour).Unix()); err != nil {
		t.Fatalf("age token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+created.Token)
	if _, err := UserFromRequest(req); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}

	// Login replaces the expired token.
	rec := postJSON(HandleLogin, "/api/v1/auth/login", `{"username":"coach","password":"hunter22!"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := decodeToken(t, rec); got.Token == created.Token {
		t.Fatal("expected a fresh token after expiry")
	}
}

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		header string
		key    string
		ok     bool
		err    bool
	}{
		{"", "", false, false},
		{"Token abc123", "abc123", true, false},
		{"bearer abc123", "abc123", true, false},
		{"Basic dXNlcjpwYXNz", "", true, true},
		{"Token", "", true, true},
		{"Token a b", "", true, true},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		key, ok, err := tokenFromHeader(req)
		if key != tt.key || ok != tt.ok || (err != nil) != tt.err {
			t.Fatalf("tokenFromHeader(%q) = %q, %v, %v", tt.header, key, ok, err)
		}
	}
}
