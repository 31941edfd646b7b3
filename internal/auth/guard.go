package auth

import (
	"context"

	"github.com/content-publishing-api/internal/apperrors"
	"github.com/content-publishing-api/internal/repository"
)

// Guard derives the caller's identity from a session token and enforces
// ownership and role rules. It is a pure predicate layer: lookups only,
// no mutations.
type Guard struct {
	creds *Credentials
	users repository.UserRepository
}

// NewGuard creates an authorization guard
func NewGuard(creds *Credentials, users repository.UserRepository) *Guard {
	return &Guard{creds: creds, users: users}
}

// Authenticate resolves a session token to a user id. The token must be
// valid and the user must still exist; every failure collapses to
// ErrUnauthenticated.
func (g *Guard) Authenticate(ctx context.Context, token string) (string, error) {
	userID, err := g.creds.ResolveToken(token)
	if err != nil {
		return "", apperrors.ErrUnauthenticated
	}

	exists, err := g.users.Exists(ctx, userID)
	if err != nil {
		return "", apperrors.Store(err)
	}
	if !exists {
		return "", apperrors.ErrUnauthenticated
	}

	return userID, nil
}

// RequireOwnerOrAdmin passes iff the caller owns the resource or carries
// the admin role; otherwise ErrForbidden.
func (g *Guard) RequireOwnerOrAdmin(ctx context.Context, callerID, ownerID string) error {
	if callerID == ownerID {
		return nil
	}
	return g.RequireAdmin(ctx, callerID)
}

// RequireAdmin passes iff the caller carries the admin role.
func (g *Guard) RequireAdmin(ctx context.Context, callerID string) error {
	caller, err := g.users.GetByID(ctx, callerID)
	if err != nil {
		return apperrors.Store(err)
	}
	if caller == nil || !caller.IsAdmin() {
		return apperrors.ErrForbidden
	}
	return nil
}
