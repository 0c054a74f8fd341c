package identity

import "errors"

// Token errors.
var (
	// ErrInvalidToken indicates the session token is malformed or its signature does not verify.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrTokenExpired indicates the session token verified but is past its expiry.
	ErrTokenExpired = errors.New("session token expired")
)

// Provider errors.
var (
	// ErrProviderClosed indicates the provider no longer accepts subscriptions.
	ErrProviderClosed = errors.New("identity provider closed")
)
