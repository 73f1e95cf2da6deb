package api

import (
	"errors"
	"fmt"
)

// TransportError is returned for any failed call: a non-2xx response, or a
// network failure in which case StatusCode is 0 and Err holds the cause.
type TransportError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: HTTP error! status: %d %s: %v", e.Method, e.Path, e.StatusCode, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s: HTTP error! status: %d %s", e.Method, e.Path, e.StatusCode, e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusCode extracts the HTTP status from err, or 0 if err is not a
// TransportError carrying a response.
func StatusCode(err error) int {
	var te *TransportError
	if errors.As(err, &te) {
		return te.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	return StatusCode(err) == 404
}
