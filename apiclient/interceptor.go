package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/teamops/dashboard/logging/logger"
)

// authorize sets the bearer token and starts a background refresh when the
// stored token has expired.
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	token, err := c.store.Token(ctx)
	if err != nil || token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)

	expired, err := c.store.IsTokenExpired(ctx)
	if err != nil || !expired {
		return
	}
	if !c.refreshing.CompareAndSwap(false, true) {
		return
	}

	c.refreshWG.Add(1)
	go func() {
		defer c.refreshWG.Done()
		defer c.refreshing.Store(false)

		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		if _, err := c.refreshToken(rctx); err != nil {
			logger.Warn(rctx, "token refresh failed", "error", err)
		}
	}()
}

// decodeResponse turns a non-2xx response into *APIError and unwraps the
// success envelope into out.
func decodeResponse(status int, body []byte, out any) error {
	if status < 200 || status >= 300 {
		return errorFromBody(status, body)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || out == nil {
		return nil
	}

	payload := body
	if body[0] == '{' {
		var envelope map[string]json.RawMessage
		if json.Unmarshal(body, &envelope) == nil {
			if _, ok := envelope["success"]; ok {
				payload = envelope["payload"]
			}
		}
	}
	if len(payload) == 0 || string(payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

func errorFromBody(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Message: DefaultErrorMessage}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil || data == nil {
		if text := http.StatusText(status); text != "" {
			apiErr.Message = text
		}
		return apiErr
	}

	if msg := messageOf(data["message"]); msg != "" {
		apiErr.Message = msg
	} else if msg := messageOf(data["error"]); msg != "" {
		apiErr.Message = msg
	}

	if e, ok := data["error"]; ok && e != nil && e != "" {
		apiErr.Details = e
	} else {
		apiErr.Details = data
	}
	return apiErr
}

// messageOf reads a message that may be a string or a list of strings.
func messageOf(v any) string {
	switch m := v.(type) {
	case string:
		return m
	case []any:
		parts := make([]string, 0, len(m))
		for _, item := range m {
			if s, ok := item.(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	}
	return ""
}
