package authz

import (
	"context"
	"errors"
	"testing"
)

func TestRequireUserUnauthenticated(t *testing.T) {
	user, err := RequireUser(context.Background())
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user, got %+v", user)
	}
}

func TestRequireUserReturnsContextUser(t *testing.T) {
	ctx := ContextWithUser(context.Background(), &AuthUser{ID: 10, Username: "ana"})

	user, err := RequireUser(ctx)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if user.ID != 10 || user.Username != "ana" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestRequireOwnerUnauthenticated(t *testing.T) {
	err := RequireOwner(context.Background(), 1)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestRequireOwnerForbidden(t *testing.T) {
	ctx := ContextWithUser(context.Background(), &AuthUser{ID: 10})

	err := RequireOwner(ctx, 11)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireOwnerAllowed(t *testing.T) {
	ctx := ContextWithUser(context.Background(), &AuthUser{ID: 10})

	if err := RequireOwner(ctx, 10); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestUserFromContextWrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), userContextKey{}, "not a user")
	if user := UserFromContext(ctx); user != nil {
		t.Fatalf("expected nil, got %+v", user)
	}
	//nolint:staticcheck // nil context is part of the contract
	if user := UserFromContext(nil); user != nil {
		t.Fatalf("expected nil for nil context, got %+v", user)
	}
}

func TestIsOwner(t *testing.T) {
	if IsOwner(nil, 1) {
		t.Fatal("nil user should not own anything")
	}
	if !IsOwner(&AuthUser{ID: 3}, 3) {
		t.Fatal("expected owner")
	}
	if IsOwner(&AuthUser{ID: 3}, 4) {
		t.Fatal("expected non-owner")
	}
}
