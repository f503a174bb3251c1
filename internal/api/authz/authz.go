package authz

import (
	"context"
	"errors"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// AuthUser is the identity resolved from a request's API token.
type AuthUser struct {
	ID       int64
	Username string
	Email    string
	IsStaff  bool
	TokenKey string
}

type userContextKey struct{}

func ContextWithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext retrieves the AuthUser stored in ctx.
// It returns nil if ctx is nil, if no user is stored, or if the stored value has a different type.
func UserFromContext(ctx context.Context) *AuthUser {
	if ctx == nil {
		return nil
	}

	user, ok := ctx.Value(userContextKey{}).(*AuthUser)
	if !ok {
		return nil
	}

	return user
}

// IsStaff reports whether the given AuthUser represents a staff user.
func IsStaff(user *AuthUser) bool {
	return user != nil && user.IsStaff
}

// RequireUser returns the authenticated user or ErrUnauthenticated.
func RequireUser(ctx context.Context) (*AuthUser, error) {
	user := UserFromContext(ctx)
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// RequireTeamManager allows the team's coach and staff users.
func RequireTeamManager(ctx context.Context, coachID int64) error {
	user, err := RequireUser(ctx)
	if err != nil {
		return err
	}
	if user.IsStaff || user.ID == coachID {
		return nil
	}
	return ErrForbidden
}
