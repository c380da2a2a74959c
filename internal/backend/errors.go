package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors. APIError values match them with errors.Is.
var (
	ErrNotFound            = errors.New("record not found")
	ErrUnauthorized        = errors.New("not authorized")
	ErrServerError         = errors.New("backend server error")
	ErrBadResponse         = errors.New("malformed backend response")
	ErrIncompatibleBackend = errors.New("incompatible backend version")
)

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
	Path       string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s: %d %s", e.Path, e.StatusCode, msg)
}

// Is maps the status code onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrServerError:
		return e.StatusCode >= http.StatusInternalServerError
	default:
		return false
	}
}
