package services

import "errors"

// The service layer error taxonomy. Controllers translate these into HTTP
// responses; nothing below the controller boundary knows about HTTP.
var (
	// ErrEmailTaken rejects registration with an already-registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is deliberately uniform for unknown email and
	// wrong password, so login never leaks account existence.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotFound covers every unknown-id lookup.
	ErrNotFound = errors.New("not found")

	// ErrForbidden covers authorisation failures on known resources.
	ErrForbidden = errors.New("forbidden")

	// ErrListingUnavailable rejects checkout of a listing that is not
	// AVAILABLE, including the loser of a concurrent double-checkout.
	ErrListingUnavailable = errors.New("listing is no longer available")

	// ErrSelfPurchase rejects a seller buying their own listing.
	ErrSelfPurchase = errors.New("cannot buy your own listing")

	// ErrListingSold rejects deleting a listing with an order against it.
	ErrListingSold = errors.New("cannot delete a sold listing")
)

// ValidationError carries the per-field messages produced by pkg/validate.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }

// AsValidation unwraps a *ValidationError when err is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
