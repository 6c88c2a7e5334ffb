package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamops/dashboard/ctxutil"
	"github.com/teamops/dashboard/logging/logger/config"
)

func newTestLogger(t *testing.T) (*Logger, *bytes.Buffer) {
	t.Helper()
	l := &Logger{Logger: logrus.New()}
	cfg := config.Default()
	cfg.Format = "json"
	cfg.Level = int(logrus.DebugLevel)
	cleanup, err := l.Init(cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	buf := &bytes.Buffer{}
	l.SetOutput(buf)
	return l, buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestInfoWritesKeyvalsAndTraceID(t *testing.T) {
	l, buf := newTestLogger(t)
	ctx := ctxutil.SetTraceID(context.Background(), "abc")

	l.Info(ctx, "template registered", "template", "task-details", "error", errors.New("boom"))

	line := decodeLine(t, buf)
	assert.Equal(t, "template registered", line["msg"])
	assert.Equal(t, "task-details", line["template"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "abc", line["trace_id"])
}

func TestSensitiveFieldsAreMasked(t *testing.T) {
	l, buf := newTestLogger(t)

	l.Warn(context.Background(), "refresh failed", "refresh_token", "r-123", "user", map[string]any{"password": "secret1", "name": "Ana"})

	line := decodeLine(t, buf)
	assert.Equal(t, "******", line["refresh_token"])
	user := line["user"].(map[string]any)
	assert.Equal(t, "******", user["password"])
	assert.Equal(t, "Ana", user["name"])
}

func TestBearerValuesAreMaskedInMessages(t *testing.T) {
	l, buf := newTestLogger(t)

	l.Debug(context.Background(), "sending Authorization: Bearer abc.def.ghi")

	line := decodeLine(t, buf)
	assert.NotContains(t, line["msg"], "abc.def.ghi")
}

func TestOddKeyvals(t *testing.T) {
	fields := fieldsFromKeyvals([]any{"a", 1, "dangling"})
	assert.Equal(t, 1, fields["a"])
	assert.Equal(t, "dangling", fields["!BADKEY"])
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newTestLogger(t)
	l.SetLevel(logrus.WarnLevel)

	l.Info(context.Background(), "hidden")
	assert.Zero(t, buf.Len())
}
