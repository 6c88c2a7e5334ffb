package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sony/gobreaker"
	"github.com/teamops/dashboard/config"
	"github.com/teamops/dashboard/logging/logger"
	"github.com/teamops/dashboard/session"
	"github.com/teamops/dashboard/structs"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var errUpstream = errors.New("upstream server error")

// Client is the dashboard API client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store
	cb         *gobreaker.CircuitBreaker
	timeout    time.Duration

	refreshing atomic.Bool
	refreshWG  sync.WaitGroup

	Auth          *AuthService
	Employees     *EmployeeService
	Teams         *TeamService
	Tasks         *TaskService
	Notifications *NotificationService
	Logs          *LogService
	Companies     *CompanyService
	Metrics       *MetricsService
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithoutBreaker disables the circuit breaker.
func WithoutBreaker() Option {
	return func(c *Client) { c.cb = nil }
}

// New creates a client for cfg using store for credentials.
func New(cfg *config.API, store session.Store, opts ...Option) *Client {
	if cfg == nil {
		cfg = &config.API{BaseURL: "http://localhost:3001/api", Timeout: 30 * time.Second}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		store:   store,
		cb:      newBreaker(cfg.Breaker),
		timeout: timeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthService{c: c}
	c.Employees = &EmployeeService{c: c}
	c.Teams = &TeamService{c: c}
	c.Tasks = &TaskService{c: c}
	c.Notifications = &NotificationService{c: c}
	c.Logs = &LogService{c: c}
	c.Companies = &CompanyService{c: c}
	c.Metrics = &MetricsService{c: c}
	return c
}

func newBreaker(b *config.Breaker) *gobreaker.CircuitBreaker {
	if b == nil {
		b = &config.Breaker{MaxRequests: 100, Interval: 5 * time.Second, Timeout: 3 * time.Second, MinRequests: 3, FailureRatio: 0.6}
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "teamops-api",
		MaxRequests: b.MaxRequests,
		Interval:    b.Interval,
		Timeout:     b.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= b.MinRequests && failureRatio >= b.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn(context.Background(), "circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string { return c.baseURL }

// Store returns the credential store.
func (c *Client) Store() session.Store { return c.store }

// WaitRefresh blocks until any in-flight token refresh has finished.
func (c *Client) WaitRefresh() { c.refreshWG.Wait() }

// Refreshing reports whether a token refresh is in flight.
func (c *Client) Refreshing() bool { return c.refreshing.Load() }

type request struct {
	method      string
	path        string
	query       any
	body        any
	rawBody     []byte
	contentType string
	skipAuth    bool
}

type rawResponse struct {
	status int
	header http.Header
	body   []byte
}

// Get issues a GET with params encoded as query string.
func (c *Client) Get(ctx context.Context, path string, params, out any) error {
	return c.do(ctx, &request{method: http.MethodGet, path: path, query: params}, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, &request{method: http.MethodPost, path: path, body: body}, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, &request{method: http.MethodPut, path: path, body: body}, out)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, &request{method: http.MethodPatch, path: path, body: body}, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, &request{method: http.MethodDelete, path: path}, out)
}

func (c *Client) do(ctx context.Context, r *request, out any) error {
	raw, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	return decodeResponse(raw.status, raw.body, out)
}

func (c *Client) send(ctx context.Context, r *request) (*rawResponse, error) {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, err
	}
	if !r.skipAuth && c.store != nil {
		c.authorize(ctx, req)
	}

	call := func() (any, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		raw := &rawResponse{status: resp.StatusCode, header: resp.Header, body: body}
		if resp.StatusCode >= http.StatusInternalServerError {
			return raw, errUpstream
		}
		return raw, nil
	}

	var result any
	if c.cb != nil {
		result, err = c.cb.Execute(call)
	} else {
		result, err = call()
	}

	if raw, ok := result.(*rawResponse); ok && raw != nil {
		return raw, nil
	}
	if err == nil {
		err = errors.New("empty response")
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &APIError{Message: "service unavailable: " + err.Error(), Err: err}
	}
	logger.Debug(ctx, "api request failed", "method", r.method, "path", r.path, "error", err)
	return nil, &APIError{Message: err.Error(), Err: err}
}

func (c *Client) newRequest(ctx context.Context, r *request) (*http.Request, error) {
	u := c.baseURL + "/" + strings.TrimLeft(r.path, "/")
	if qs := structs.QueryString(r.query); qs != "" {
		u += "?" + qs
	}

	var body io.Reader
	contentType := r.contentType
	switch {
	case r.rawBody != nil:
		body = bytes.NewReader(r.rawBody)
	case r.body != nil:
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("api: encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}
	if contentType == "" {
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	return req, nil
}
