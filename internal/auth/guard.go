// Package auth implements the session-based authorization guard that
// fronts every protected operation. The guard is the single place
// where tokens are checked, so the distinction between "no session",
// "expired session", and "valid session for the wrong user" is decided
// identically no matter which handler asked.
package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Srujan0798/CareerMirror/internal/store"
)

// Guard authorizes requests against the session store.
type Guard struct {
	sessions store.SessionStore
}

// NewGuard returns a Guard backed by the given session store.
func NewGuard(sessions store.SessionStore) *Guard {
	return &Guard{sessions: sessions}
}

// Authorize resolves the token to a user id and, when targetOwnerID is
// set, additionally requires the session user to be that owner.
//
// An empty or unknown token yields ErrUnauthenticated. An expired
// token yields store.ErrSessionExpired so callers can tell the client
// to re-authenticate rather than treat it as a generic failure. A
// valid session for a different user yields ErrForbidden.
func (g *Guard) Authorize(ctx context.Context, token string, targetOwnerID *uuid.UUID) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, ErrUnauthenticated
	}
	userID, err := g.sessions.ResolveToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return uuid.Nil, ErrUnauthenticated
		}
		return uuid.Nil, err
	}
	if targetOwnerID != nil && *targetOwnerID != userID {
		return uuid.Nil, ErrForbidden
	}
	return userID, nil
}
