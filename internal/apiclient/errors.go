package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned for every non-2xx response from the bookstore API.
type APIError struct {
	StatusCode int
	// Message is the "error" field of the response body, if any.
	Message string
	// Errors holds per-field validation messages from a 400.
	Errors map[string]string
	// Body is the raw response body.
	Body string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("bookstore API error: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("bookstore API error: HTTP %d", e.StatusCode)
}

// AsAPIError unwraps err into an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

func isRetryable(err error) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}
	return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
}
