package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jwtstd "github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamops/dashboard/config"
	"github.com/teamops/dashboard/logging/logger"
	"github.com/teamops/dashboard/pdf"
	"github.com/teamops/dashboard/security/jwt"
)

var stubPDF = []byte("%PDF-1.3 stub")

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := pdf.NewRegistry()
	reg.Register("task-details", func(ctx context.Context, data map[string]any, opts pdf.Options) ([]byte, error) {
		return stubPDF, nil
	})
	reg.Register("broken", func(ctx context.Context, data map[string]any, opts pdf.Options) ([]byte, error) {
		return nil, errors.New("font missing")
	})

	cfg := &config.Config{
		AppName: "teamops",
		PDF:     &config.PDF{Workers: 2, QueueSize: 4, Timeout: time.Second, MaxBody: 1 << 10},
		Auth:    &config.Auth{JWT: &config.JWT{Secret: "secret"}},
	}
	srv, err := NewServer(cfg, logger.StdLogger(), reg)
	require.NoError(t, err)
	t.Cleanup(func() { srv.Cleanup(context.Background()) })
	return srv.SetupRouter()
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/pdf/generate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(w, req)
	return w
}

func body(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestGenerateValidation(t *testing.T) {
	h := newTestServer(t)
	for _, in := range []string{
		`{}`,
		`{"template":"task-details"}`,
		`{"data":{"id":"1"}}`,
		`{"template":"","data":{"id":"1"}}`,
	} {
		w := post(h, in)
		assert.Equal(t, http.StatusBadRequest, w.Code, in)
		b := body(t, w)
		assert.Equal(t, false, b["success"])
		assert.Equal(t, "Template and data are required", b["error"])
	}
}

func TestGenerateMalformedBody(t *testing.T) {
	w := post(newTestServer(t), `not json`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	b := body(t, w)
	assert.Equal(t, false, b["success"])
	assert.Contains(t, b["error"], "invalid request body")
}

func TestGenerateBodyTooLarge(t *testing.T) {
	h := newTestServer(t)
	big := `{"template":"task-details","data":{"x":"` + string(bytes.Repeat([]byte("a"), 2048)) + `"}}`
	w := post(h, big)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body(t, w)["error"], "exceeds")
}

func TestGenerateUnknownTemplate(t *testing.T) {
	h := newTestServer(t)
	w := post(h, `{"template":"invoice","data":{}}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	b := body(t, w)
	assert.Equal(t, `Template "invoice" not found`, b["error"])
	assert.Equal(t, []any{"broken", "task-details"}, b["availableTemplates"])
}

func TestGenerateRenderFailure(t *testing.T) {
	h := newTestServer(t)
	w := post(h, `{"template":"broken","data":{}}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	b := body(t, w)
	assert.Equal(t, false, b["success"])
	assert.Equal(t, "font missing", b["error"])
}

func TestGenerateSuccess(t *testing.T) {
	h := newTestServer(t)

	w := post(h, `{"template":"task-details","data":{"id":"1"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, strconv.Itoa(len(stubPDF)), w.Header().Get("Content-Length"))
	assert.Regexp(t, regexp.MustCompile(`^attachment; filename="task-details-\d+\.pdf"$`), w.Header().Get("Content-Disposition"))
	assert.Equal(t, stubPDF, w.Body.Bytes())

	w = post(h, `{"template":"task-details","data":{"id":"1"},"options":{"filename":"task-1-revisar.pdf"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="task-1-revisar.pdf"`, w.Header().Get("Content-Disposition"))
}

func TestListTemplates(t *testing.T) {
	h := newTestServer(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/pdf/generate", nil))
	require.Equal(t, http.StatusOK, w.Code)
	b := body(t, w)
	assert.Equal(t, true, b["success"])
	assert.Equal(t, []any{"broken", "task-details"}, b["templates"])
	assert.Equal(t, float64(2), b["count"])
}

func TestHealthAndTrace(t *testing.T) {
	h := newTestServer(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body(t, w)["status"])
	assert.NotEmpty(t, w.Header().Get("X-Trace-Id"))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Trace-Id", "trace-123")
	h.ServeHTTP(w, req)
	assert.Equal(t, "trace-123", w.Header().Get("X-Trace-Id"))
}

func TestNavigation(t *testing.T) {
	h := newTestServer(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/navigation", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	tok, err := jwt.NewTokenManager("secret").GenerateAccessToken("jti", jwt.Claims{
		Role:             "EMPLOYEE",
		RegisteredClaims: jwtstd.RegisteredClaims{Subject: "u1"},
	})
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/navigation", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	b := body(t, w)
	assert.Equal(t, "EMPLOYEE", b["role"])
	assert.Equal(t, "Colaborador", b["roleLabel"])
	assert.Len(t, b["links"], 2)
}

func TestStats(t *testing.T) {
	h := newTestServer(t)
	post(h, `{"template":"task-details","data":{}}`)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/pdf/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)
	pool := body(t, w)["pool"].(map[string]any)
	assert.Equal(t, float64(1), pool["completed_tasks"])
}

func TestNewServerWarnsWithoutSecret(t *testing.T) {
	var buf bytes.Buffer
	log := &logger.Logger{Logger: logrus.New()}
	log.SetOutput(&buf)

	srv, err := NewServer(&config.Config{AppName: "teamops"}, log, pdf.NewRegistry())
	require.NoError(t, err)
	srv.Cleanup(context.Background())
	assert.Contains(t, buf.String(), "without signature verification")

	buf.Reset()
	srv, err = NewServer(&config.Config{AppName: "teamops", Auth: &config.Auth{JWT: &config.JWT{Secret: "secret"}}}, log, pdf.NewRegistry())
	require.NoError(t, err)
	srv.Cleanup(context.Background())
	assert.NotContains(t, buf.String(), "without signature verification")
}
