package services

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by all services. Handlers translate them to HTTP
// statuses with errors.Is; anything unmatched surfaces as an internal error.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")

	// ErrModeMismatch is the BadRequest raised when the supplied credentials
	// do not fit the form's access mode (e.g. no password for a
	// password-protected form). It preserves the source system's precedence
	// of checking the password's presence before the mode.
	ErrModeMismatch = fmt.Errorf("%w: form access configuration mismatch", ErrBadRequest)
)
