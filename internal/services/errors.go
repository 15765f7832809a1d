package services

import "errors"

// Sentinel errors for the failure kinds handlers need to tell apart.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("unable to login")

	// ErrEmailTaken is returned when registering or updating to an email
	// that already belongs to another account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidUpdate is returned when a partial update contains a field
	// outside the allowed set for that resource.
	ErrInvalidUpdate = errors.New("invalid updates")

	// ErrInvalidToken is returned when a presented token fails signature or
	// expiry checks, or has been revoked.
	ErrInvalidToken = errors.New("invalid token")
)

// ValidationError reports one or more field-level validation failures.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
