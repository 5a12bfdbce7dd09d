package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized reports that the backend rejected the bearer credential.
// By the time a caller sees it the credential has already been cleared.
var ErrUnauthorized = errors.New("unauthorized")

// IsUnauthorized reports whether err is an authentication rejection.
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }

// APIError is the failure surfaced when the server responded but the
// envelope signalled failure (success=false or missing data), or the HTTP
// status precluded a payload. Message carries the server-supplied error
// string when one was present.
type APIError struct {
	Op      string // operation that failed, e.g. "create session"
	Status  int    // HTTP status code, 0 when unknown
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}
