// Package middleware provides HTTP middleware for authentication.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Srujan0798/CareerMirror/internal/store"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// userIDKey is the context key for storing the authenticated user ID.
const userIDKey ContextKey = "userID"

// Authorizer resolves an opaque bearer token to a user id.
type Authorizer interface {
	Authorize(ctx context.Context, token string, targetOwnerID *uuid.UUID) (uuid.UUID, error)
}

// RequireAuth creates middleware that resolves the bearer token to a
// session and adds the user ID to the request context. The two 401
// causes carry distinct codes: an expired session tells the client to
// re-authenticate, everything else reads as plain unauthenticated.
func RequireAuth(guard Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				unauthorized(w, "unauthenticated", "Authentication required")
				return
			}

			userID, err := guard.Authorize(r.Context(), token, nil)
			if err != nil {
				if errors.Is(err, store.ErrSessionExpired) {
					unauthorized(w, "session_expired", "Session expired, please log in again")
					return
				}
				unauthorized(w, "unauthenticated", "Authentication required")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the bearer token from the Authorization header.
// Returns "" when the header is absent or malformed. The "Bearer"
// prefix is matched case-insensitively.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetUserID extracts the authenticated user ID from the request context.
func GetUserID(r *http.Request) (uuid.UUID, error) {
	userID, ok := r.Context().Value(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("user ID not found in request context")
	}
	return userID, nil
}

// WithUserID returns a request whose context carries the given user ID
// (for testing purposes).
func WithUserID(r *http.Request, userID uuid.UUID) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
}

func unauthorized(w http.ResponseWriter, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   code,
		"message": message,
	})
}
