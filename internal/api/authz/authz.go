package authz

import (
	"context"
	"errors"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// AuthUser is the signed-in user attached to a request.
type AuthUser struct {
	ID       int64
	Username string
	Slug     string
	Email    string
	Imagen   string
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

// RequireUser returns the signed-in user or ErrUnauthenticated.
func RequireUser(ctx context.Context) (*AuthUser, error) {
	user := UserFromContext(ctx)
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// RequireOwner succeeds only when the signed-in user is ownerID.
func RequireOwner(ctx context.Context, ownerID int64) error {
	user, err := RequireUser(ctx)
	if err != nil {
		return err
	}
	if user.ID != ownerID {
		return ErrForbidden
	}
	return nil
}

// IsOwner reports whether user is ownerID. A nil user owns nothing.
func IsOwner(user *AuthUser, ownerID int64) bool {
	return user != nil && user.ID == ownerID
}
