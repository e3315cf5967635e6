package domain

import "errors"

// Sentinel errors for the auth core. Handlers and the central HTTP error
// handler map these to status codes; nothing else should inspect error text.
var (
	// ErrInvalidCredentials covers both unknown username and wrong password.
	// The two cases are never distinguished at the boundary.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is returned by store lookups when no user matches.
	ErrUserNotFound = errors.New("user not found")

	// ErrUnauthenticated means no token, a malformed token, or a token that
	// failed signature/issuer/audience/expiry verification.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden means a valid token whose role does not satisfy the
	// endpoint's policy.
	ErrForbidden = errors.New("access forbidden")

	// ErrStoreUnavailable means the persistence backend is unreachable. It is
	// deliberately distinct from ErrInvalidCredentials so infrastructure
	// failures are never reported as login failures.
	ErrStoreUnavailable = errors.New("user store unavailable")
)
