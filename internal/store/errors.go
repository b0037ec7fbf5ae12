package store

import "errors"

// Storage-level errors. Higher layers translate these into the
// user-facing taxonomy (see internal/auth and internal/server).
var (
	// ErrDuplicateUser indicates a signup email collision.
	ErrDuplicateUser = errors.New("email already registered")

	// ErrUserNotFound indicates no user matches the given id.
	ErrUserNotFound = errors.New("user not found")

	// ErrSessionNotFound indicates the token resolves to no session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired indicates the token matched a session past its
	// expiry. The session is destroyed before this is returned, so it
	// is reported at most once per token.
	ErrSessionExpired = errors.New("session expired")

	// ErrResumeNotFound indicates no resume matches the given id.
	ErrResumeNotFound = errors.New("resume not found")

	// ErrNotFoundOrForbidden is the merged signal for resume mutation
	// paths: either the record does not exist or the caller does not
	// own it. The two cases are deliberately indistinguishable.
	ErrNotFoundOrForbidden = errors.New("resume not found or access denied")
)
