// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist or is owned
	// by a different user (the two are deliberately indistinguishable).
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthorized indicates failed authentication: bad credentials or an
	// invalid, expired or reused token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrBadRequest indicates a malformed flow, e.g. confirming a
	// non-existent account.
	ErrBadRequest = errors.New("bad request")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")
)
