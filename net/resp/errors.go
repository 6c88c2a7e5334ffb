package resp

import (
	"net/http"

	"github.com/teamops/dashboard/ecode"
)

// BadRequest indicates a bad request.
func BadRequest(message string, errs ...any) *Exception {
	return newException(http.StatusBadRequest, ecode.RequestErr, message, errs...)
}

// UnAuthorized indicates that the request is unauthorized.
func UnAuthorized(message string, errs ...any) *Exception {
	return newException(http.StatusUnauthorized, ecode.Unauthorized, message, errs...)
}

// Forbidden indicates access is forbidden.
func Forbidden(message string, errs ...any) *Exception {
	return newException(http.StatusForbidden, ecode.AccessDenied, message, errs...)
}

// NotFound indicates that the requested resource is not found.
func NotFound(message string, errs ...any) *Exception {
	return newException(http.StatusNotFound, ecode.NothingFound, message, errs...)
}

// InternalServer indicates a server error.
func InternalServer(message string, errs ...any) *Exception {
	return newException(http.StatusInternalServerError, ecode.ServerErr, message, errs...)
}

// ServiceUnavailable indicates the server cannot take more work right now.
func ServiceUnavailable(message string, errs ...any) *Exception {
	return newException(http.StatusServiceUnavailable, ecode.ServiceUnavailable, message, errs...)
}

// FromCode builds a failure from a business code, using its registered status.
func FromCode(code int, message string, errs ...any) *Exception {
	if message == "" {
		message = ecode.Text(code)
	}
	return newException(ecode.ToHTTPStatus(code), code, message, errs...)
}
