// Package ratelimit throttles the credential endpoints: a token bucket per
// client IP and a lockout per username after repeated login failures.
package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

// realClock implements Clock using the system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config holds rate limit configuration.
type Config struct {
	RequestsPerSecond float64 // Sustained auth requests per IP (default: 5)
	Burst             int     // Bucket size per IP (default: 10)

	LoginMaxAttempts int           // Failed logins before lockout (default: 5)
	LoginLockout     time.Duration // Lockout duration (default: 5m)

	// Clock for testing (nil uses real time)
	Clock Clock
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() *Config {
	return &Config{
		RequestsPerSecond: 5,
		Burst:             10,
		LoginMaxAttempts:  5,
		LoginLockout:      5 * time.Minute,
	}
}

// LimitResult contains the result of a rate limit check.
type LimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
	Reason     string // For logging
}

type bucket struct {
	limiter *rate.Limiter
	lastAt  time.Time
}

// entry tracks failed logins for one username.
type entry struct {
	count    int
	lastAt   time.Time
	lockedAt time.Time // zero if not locked
}

// Limiter implements per-IP and per-username limiting for auth operations.
type Limiter struct {
	config *Config
	clock  Clock
	mu     sync.Mutex
	// Keyed by hash of IP or username
	byIP    map[string]*bucket
	loginBy map[string]*entry

	cleanupCtx    context.Context
	cleanupCancel context.CancelFunc
	cleanupOnce   sync.Once
	cleanupWg     sync.WaitGroup
}

// New creates a new rate limiter with the given config.
func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Limiter{
		config:        cfg,
		clock:         clock,
		byIP:          make(map[string]*bucket),
		loginBy:       make(map[string]*entry),
		cleanupCtx:    ctx,
		cleanupCancel: cancel,
	}
}

// Close stops the cleanup goroutine and releases resources.
func (l *Limiter) Close() {
	l.cleanupCancel()
	l.cleanupWg.Wait()
}

// AllowIP consumes one token from the bucket of ip.
func (l *Limiter) AllowIP(ip string) LimitResult {
	l.startCleanup()
	now := l.clock.Now()
	key := l.hashKey("ip:", ip)

	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.byIP[key]
	if b == nil {
		b = &bucket{limiter: rate.NewLimiter(rate.Limit(l.config.RequestsPerSecond), l.config.Burst)}
		l.byIP[key] = b
	}
	b.lastAt = now

	reservation := b.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return LimitResult{Allowed: false, RetryAfter: time.Second, Reason: "ip_rate"}
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return LimitResult{Allowed: false, RetryAfter: delay, Reason: "ip_rate"}
	}
	return LimitResult{Allowed: true}
}

// CheckLogin reports whether username may attempt a login.
// Does NOT record the attempt - call RecordLoginFailure when credentials are rejected.
func (l *Limiter) CheckLogin(username string) LimitResult {
	now := l.clock.Now()
	key := l.hashKey("login:", normalizeIdentifier(username))

	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.loginBy[key]
	if e == nil {
		return LimitResult{Allowed: true}
	}
	if !e.lockedAt.IsZero() {
		elapsed := now.Sub(e.lockedAt)
		if elapsed < l.config.LoginLockout {
			return LimitResult{
				Allowed:    false,
				RetryAfter: l.config.LoginLockout - elapsed,
				Reason:     "lockout",
			}
		}
	}
	return LimitResult{Allowed: true}
}

// RecordLoginFailure counts a rejected login.
// Returns true if max attempts reached and lockout was triggered.
func (l *Limiter) RecordLoginFailure(username string) (lockedOut bool) {
	now := l.clock.Now()
	key := l.hashKey("login:", normalizeIdentifier(username))

	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.loginBy[key]
	if e == nil || (!e.lockedAt.IsZero() && now.Sub(e.lockedAt) >= l.config.LoginLockout) {
		e = &entry{}
		l.loginBy[key] = e
	}
	e.count++
	e.lastAt = now
	if e.count >= l.config.LoginMaxAttempts && e.lockedAt.IsZero() {
		e.lockedAt = now
		lockedOut = true
	}
	return lockedOut
}

// ResetLogin clears the failure counter after a successful login.
func (l *Limiter) ResetLogin(username string) {
	key := l.hashKey("login:", normalizeIdentifier(username))
	l.mu.Lock()
	delete(l.loginBy, key)
	l.mu.Unlock()
}

func (l *Limiter) hashKey(prefix, value string) string {
	hash := sha256.Sum256([]byte(value))
	return prefix + hex.EncodeToString(hash[:8])
}

// normalizeIdentifier lowercases the identifier to prevent case-based bypass.
func normalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

func (l *Limiter) startCleanup() {
	l.cleanupOnce.Do(func() {
		l.cleanupWg.Add(1)
		go func() {
			defer l.cleanupWg.Done()
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-l.cleanupCtx.Done():
					return
				case <-ticker.C:
					l.cleanup()
				}
			}
		}()
	})
}

func (l *Limiter) cleanup() {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	for k, b := range l.byIP {
		if now.Sub(b.lastAt) > time.Hour {
			delete(l.byIP, k)
		}
	}

	maxAge := l.config.LoginLockout + time.Hour
	for k, e := range l.loginBy {
		if now.Sub(e.lastAt) > maxAge {
			delete(l.loginBy, k)
		}
	}
}

// GetClientIP extracts the client IP from a request.
// When trustProxy is true, uses the rightmost public IP from X-Forwarded-For.
// When trustProxy is false, ignores X-Forwarded-For entirely (prevents spoofing).
func GetClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			for i := len(parts) - 1; i >= 0; i-- {
				ip := strings.TrimSpace(parts[i])
				if ip != "" && !isPrivateIP(ip) {
					return ip
				}
			}
			// All IPs are private, use the last one
			return strings.TrimSpace(parts[len(parts)-1])
		}

		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		if parsed := net.ParseIP(r.RemoteAddr); parsed != nil {
			return r.RemoteAddr
		}
		return r.RemoteAddr
	}
	return ip
}

var privateNetworks []*net.IPNet

func init() {
	privateRanges := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"127.0.0.0/8",
		"::1/128",
		"fc00::/7",
		"fe80::/10", // Link-local
	}
	for _, cidr := range privateRanges {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic("invalid private CIDR: " + cidr)
		}
		privateNetworks = append(privateNetworks, network)
	}
}

// isPrivateIP checks if an IP is in a private/reserved range.
func isPrivateIP(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}
	if ipv4 := ip.To4(); ipv4 != nil {
		ip = ipv4
	}
	for _, network := range privateNetworks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// SanitizeIdentifier masks a username or email for logging.
func SanitizeIdentifier(identifier string) string {
	identifier = normalizeIdentifier(identifier)
	if at := strings.Index(identifier, "@"); at >= 0 {
		local, domain := identifier[:at], identifier[at+1:]
		if len(local) > 2 {
			return local[:2] + "***@" + domain
		}
		return "***@" + domain
	}
	if len(identifier) > 2 {
		return identifier[:2] + "***"
	}
	return "***"
}

// LogRateLimitExceeded logs a rate limit event with sanitized identifier.
func LogRateLimitExceeded(limitType, identifier, ip, reason string) {
	log.Warn().
		Str("event", "rate_limit_exceeded").
		Str("type", limitType).
		Str("identifier", SanitizeIdentifier(identifier)).
		Str("ip", ip).
		Str("reason", reason).
		Msg("Auth rate limit exceeded")
}
