package auth

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/codr1/leagueapi/internal/api/authz"
	dbgen "github.com/codr1/leagueapi/internal/db/generated"
)

const tokenKeyBytes = 20

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// NewTokenKey returns 40 random hex characters.
func NewTokenKey() (string, error) {
	buf := make([]byte, tokenKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// tokenFromHeader extracts the key from "Token <key>" or "Bearer <key>".
// ok is false when no Authorization header was sent.
func tokenFromHeader(r *http.Request) (key string, ok bool, err error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", false, nil
	}
	scheme, value, found := strings.Cut(header, " ")
	if !found {
		return "", true, ErrInvalidToken
	}
	if !strings.EqualFold(scheme, "Token") && !strings.EqualFold(scheme, "Bearer") {
		return "", true, ErrInvalidToken
	}
	value = strings.TrimSpace(value)
	if value == "" || strings.ContainsAny(value, " \t") {
		return "", true, ErrInvalidToken
	}
	return value, true, nil
}

func tokenExpired(createdAt int64, ttl time.Duration, now time.Time) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(time.Unix(createdAt, 0)) >= ttl
}

// UserFromRequest resolves the API token on r. It returns (nil, nil) when
// the request carries no Authorization header.
func UserFromRequest(r *http.Request) (*authz.AuthUser, error) {
	key, ok, err := tokenFromHeader(r)
	if !ok || err != nil {
		return nil, err
	}

	q := loadQueries()
	if q == nil {
		return nil, errors.New("auth queries not initialized")
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	row, err := q.GetAuthTokenUser(ctx, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if tokenExpired(row.TokenCreatedAt, tokenTTL(), time.Now()) {
		return nil, ErrTokenExpired
	}

	return &authz.AuthUser{
		ID:       row.ID,
		Username: row.Username,
		Email:    row.Email,
		IsStaff:  row.IsStaff,
		TokenKey: row.Key,
	}, nil
}

// issueToken returns the user's live token, replacing an expired one.
func issueToken(ctx context.Context, q *dbgen.Queries, userID int64, now time.Time) (string, error) {
	existing, err := q.GetAuthTokenByUserID(ctx, userID)
	switch {
	case err == nil && !tokenExpired(existing.CreatedAt, tokenTTL(), now):
		return existing.Key, nil
	case err == nil:
		if _, err := q.DeleteAuthTokensForUser(ctx, userID); err != nil {
			return "", fmt.Errorf("delete expired token: %w", err)
		}
	case !errors.Is(err, sql.ErrNoRows):
		return "", fmt.Errorf("load token: %w", err)
	}

	key, err := NewTokenKey()
	if err != nil {
		return "", err
	}
	token, err := q.CreateAuthToken(ctx, dbgen.CreateAuthTokenParams{
		Key:       key,
		UserID:    userID,
		CreatedAt: now.Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("create token: %w", err)
	}
	return token.Key, nil
}
