package ecode

import (
	"net/http"
	"sync"
)

// Business codes returned in failure envelopes.
const (
	OK = 0

	NoLogin      = -101
	TokenExpired = -102
	Unauthorized = -103
	AccessDenied = -403

	RequestErr       = -400
	ParamErr         = -401
	NothingFound     = -404
	MethodNotAllowed = -405
	Conflict         = -409

	ServerErr          = -500
	ServiceUnavailable = -503
	Deadline           = -504

	TemplateNotFound = -1001
	RenderFailed     = -1002
	NoData           = -1003
)

var (
	mu    sync.RWMutex
	texts = map[int]string{
		OK:                 "ok",
		NoLogin:            "Account not logged in",
		TokenExpired:       "Token expired",
		Unauthorized:       "Unauthorized",
		AccessDenied:       "Access denied",
		RequestErr:         "Invalid request",
		ParamErr:           "Invalid parameters",
		NothingFound:       "Resource not found",
		MethodNotAllowed:   "Method not allowed",
		Conflict:           "Resource conflict",
		ServerErr:          "Internal server error",
		ServiceUnavailable: "Service unavailable",
		Deadline:           "Deadline exceeded",
		TemplateNotFound:   "Template not found",
		RenderFailed:       "Failed to generate PDF",
		NoData:             "No data to export",
	}
	statuses = map[int]int{
		OK:                 http.StatusOK,
		NoLogin:            http.StatusUnauthorized,
		TokenExpired:       http.StatusUnauthorized,
		Unauthorized:       http.StatusUnauthorized,
		AccessDenied:       http.StatusForbidden,
		RequestErr:         http.StatusBadRequest,
		ParamErr:           http.StatusBadRequest,
		NothingFound:       http.StatusNotFound,
		MethodNotAllowed:   http.StatusMethodNotAllowed,
		Conflict:           http.StatusConflict,
		ServerErr:          http.StatusInternalServerError,
		ServiceUnavailable: http.StatusServiceUnavailable,
		Deadline:           http.StatusGatewayTimeout,
		TemplateNotFound:   http.StatusNotFound,
		RenderFailed:       http.StatusInternalServerError,
		NoData:             http.StatusBadRequest,
	}
)

// Text returns the message registered for code.
func Text(code int) string {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := texts[code]; ok {
		return t
	}
	return texts[ServerErr]
}

// ToHTTPStatus maps a business code to an HTTP status.
func ToHTTPStatus(code int) int {
	mu.RLock()
	defer mu.RUnlock()
	if s, ok := statuses[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Register adds or replaces an application code.
func Register(code, status int, text string) {
	mu.Lock()
	defer mu.Unlock()
	texts[code] = text
	statuses[code] = status
}
