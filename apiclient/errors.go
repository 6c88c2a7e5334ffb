package apiclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/teamops/dashboard/ecode"
)

// DefaultErrorMessage is used when a failed response carries no message.
const DefaultErrorMessage = "An error occurred"

// APIError is a failed API call. StatusCode is 0 for transport failures.
type APIError struct {
	StatusCode int
	Message    string
	Details    any
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("api: %s", e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Code maps the HTTP status to a business code.
func (e *APIError) Code() int {
	switch e.StatusCode {
	case 0:
		return ecode.ServiceUnavailable
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ecode.RequestErr
	case http.StatusUnauthorized:
		return ecode.Unauthorized
	case http.StatusForbidden:
		return ecode.AccessDenied
	case http.StatusNotFound:
		return ecode.NothingFound
	case http.StatusConflict:
		return ecode.Conflict
	}
	if e.StatusCode >= 500 {
		return ecode.ServerErr
	}
	return ecode.RequestErr
}

// AsAPIError unwraps err into an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports a 401 response.
func IsUnauthorized(err error) bool {
	e, ok := AsAPIError(err)
	return ok && e.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports a 404 response.
func IsNotFound(err error) bool {
	e, ok := AsAPIError(err)
	return ok && e.StatusCode == http.StatusNotFound
}
