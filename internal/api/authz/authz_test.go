package authz

import (
	"context"
	"errors"
	"testing"
)

func TestRequireUserUnauthenticated(t *testing.T) {
	_, err := RequireUser(context.Background())
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestRequireUserReturnsContextUser(t *testing.T) {
	ctx := ContextWithUser(context.Background(), &AuthUser{ID: 7, Username: "coach"})

	user, err := RequireUser(ctx)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if user.ID != 7 {
		t.Fatalf("expected user 7, got %d", user.ID)
	}
}

func TestRequireTeamManagerUnauthenticated(t *testing.T) {
	err := RequireTeamManager(context.Background(), 1)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestRequireTeamManagerOtherUserForbidden(t *testing.T) {
	ctx := ContextWithUser(context.Background(), &AuthUser{ID: 10})

	err := RequireTeamManager(ctx, 1)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireTeamManagerCoachAllowed(t *testing.T) {
	ctx := ContextWithUser(context.Background(), &AuthUser{ID: 1})

	if err := RequireTeamManager(ctx, 1); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestRequireTeamManagerStaffAllowed(t *testing.T) {
	ctx := ContextWithUser(context.Background(), &AuthUser{ID: 10, IsStaff: true})

	if err := RequireTeamManager(ctx, 1); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestUserFromContextWrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), userContextKey{}, "not a user")
	if UserFromContext(ctx) != nil {
		t.Fatalf("expected nil user for wrong value type")
	}
}
