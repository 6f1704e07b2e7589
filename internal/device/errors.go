package device

import (
	"errors"
	"fmt"
)

// Failure kinds for a device exchange. Every error returned by this package
// matches exactly one of them via errors.Is.
var (
	ErrTransport  = errors.New("device unreachable")
	ErrProtocol   = errors.New("device returned an error status")
	ErrDecode     = errors.New("invalid device response")
	ErrValidation = errors.New("invalid input")
	ErrNoCSRF     = errors.New("csrf token not found")
)

// StatusError is a non-2xx reply. It keeps the body so callers can pull a
// device-supplied error message out of it.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Code)
}

// Is reports ErrProtocol so callers can classify without a type switch.
func (e *StatusError) Is(target error) bool {
	return target == ErrProtocol
}
