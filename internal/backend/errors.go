package backend

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned by Me when the backend has no session for the
// caller; the browser must be sent to the login surface.
var ErrUnauthorized = errors.New("backend: not authenticated")

// LoadError marks a failed read. Callers render a fixed placeholder for the
// resource and never retry.
type LoadError struct {
	Resource string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %s", e.Resource, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx answer. Detail carries the backend's human readable
// message and is empty when the body had none.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend answered %d", e.Status)
	}
	return fmt.Sprintf("backend answered %d: %s", e.Status, e.Detail)
}

// DetailOr returns the backend detail carried by err, or fallback when err is
// not an APIError or the backend sent no detail.
func DetailOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// IsAPIError reports whether the backend answered at all. A false result
// means the request failed in transport.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
