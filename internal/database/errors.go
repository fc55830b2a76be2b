package database

import "errors"

// Sentinel errors surfaced by the store and the services built on it.
// The HTTP layer maps each kind to a stable status; Unavailable and
// NotFound stay distinguishable because they drive different client UX.
var (
	// ErrNotFound entity absent.
	ErrNotFound = errors.New("not found")

	// ErrInvalidReference cross-entity consistency violated
	// (e.g. room does not belong to the given hotel).
	ErrInvalidReference = errors.New("invalid reference")

	// ErrNotAvailable date-range conflict with an occupying reservation.
	ErrNotAvailable = errors.New("room not available for these dates")

	// ErrInvalidCredentials login failure, deliberately the same for a
	// wrong email, a wrong password and an inactive account.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken any token verification, lookup, expiry or
	// revocation failure, deliberately undifferentiated.
	ErrInvalidToken = errors.New("invalid token")

	// ErrValidation malformed input: bad date format, negative price,
	// end before start, unknown enum value.
	ErrValidation = errors.New("validation failed")

	// ErrAlreadyExists uniqueness violated (room number per hotel,
	// user email).
	ErrAlreadyExists = errors.New("already exists")

	// ErrConcurrentModification optimistic check lost a race.
	ErrConcurrentModification = errors.New("concurrent modification")
)
