package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is matched by StatusError values carrying a 404.
var ErrNotFound = errors.New("not found")

// StatusError reports a non-2xx response from the backend.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
}

// Is lets errors.Is(err, ErrNotFound) match a 404.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// InvalidPayloadError reports a 2xx response whose body could not be used.
type InvalidPayloadError struct {
	Path string
	Err  error
}

func (e *InvalidPayloadError) Error() string {
	return fmt.Sprintf("invalid payload from %s: %v", e.Path, e.Err)
}

func (e *InvalidPayloadError) Unwrap() error { return e.Err }
