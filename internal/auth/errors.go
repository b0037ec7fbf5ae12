package auth

import "errors"

var (
	// ErrUnauthenticated means the request carried no token, or a token
	// that resolves to no session.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden means the session is valid but its user does not own
	// the targeted resource.
	ErrForbidden = errors.New("access denied")
)
