package resp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/teamops/dashboard/ecode"
)

// Exception represents a failure response.
type Exception struct {
	Status  int            // HTTP status
	Code    int            // Business code
	Message string         // Message
	Errors  any            // Validation errors
	Extra   map[string]any // Additional top level keys
}

// Error implements error so handlers can pass exceptions around.
func (e *Exception) Error() string {
	return e.Message
}

// With attaches an extra top level key to the failure body.
func (e *Exception) With(key string, value any) *Exception {
	if e.Extra == nil {
		e.Extra = make(map[string]any)
	}
	e.Extra[key] = value
	return e
}

// newException creates a new failure.
func newException(status, code int, message string, errs ...any) *Exception {
	e := &Exception{Status: status, Code: code, Message: message}
	if len(errs) > 0 {
		e.Errors = errs[0]
	}
	return e
}

// Success handles success responses.
func Success(w http.ResponseWriter, data ...any) {
	WithStatusCode(w, http.StatusOK, data...)
}

// WithStatusCode handles success responses with custom status code.
func WithStatusCode(w http.ResponseWriter, statusCode int, data ...any) {
	body := map[string]any{"success": true}

	if len(data) > 0 && data[0] != nil {
		switch v := data[0].(type) {
		case string:
			body["message"] = v
		case map[string]any:
			for key, val := range v {
				if key == "success" {
					continue
				}
				body[key] = val
			}
		case map[string]string:
			for key, val := range v {
				body[key] = val
			}
		default:
			body["payload"] = v
		}
	}

	writeJSON(w, statusCode, body)
}

// Fail handles failure responses.
func Fail(w http.ResponseWriter, r *Exception) {
	if r == nil {
		r = InternalServer(ecode.Text(ecode.ServerErr))
	}
	statusCode, body := buildFailureResponse(r)
	writeJSON(w, statusCode, body)
}

// buildFailureResponse builds the failure response.
func buildFailureResponse(r *Exception) (int, map[string]any) {
	status := http.StatusBadRequest
	code := ecode.RequestErr

	if r.Code != 0 {
		code = r.Code
		status = ecode.ToHTTPStatus(code)
	}
	if r.Status != 0 {
		status = r.Status
	}

	message := r.Message
	if message == "" {
		message = ecode.Text(code)
	}

	body := map[string]any{
		"success": false,
		"error":   message,
		"code":    code,
	}
	if r.Errors != nil {
		body["errors"] = r.Errors
	}
	for key, val := range r.Extra {
		body[key] = val
	}
	return status, body
}

// Attachment writes a binary download.
func Attachment(w http.ResponseWriter, contentType, filename string, data []byte) error {
	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	h.Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(data)
	return err
}

// writeJSON writes res as JSON with the given status code.
func writeJSON(w http.ResponseWriter, code int, res any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
	}
}
