package resp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamops/dashboard/ecode"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccessFlattensMaps(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]any{"templates": []string{"a"}, "count": 1})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 1, body["count"])
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestSuccessWrapsPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	WithStatusCode(rec, http.StatusCreated, []int{1, 2})

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Len(t, body["payload"], 2)
}

func TestFailWithExtraKeys(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, NotFound(`Template "x" not found`).With("availableTemplates", []string{"task-details"}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, `Template "x" not found`, body["error"])
	assert.Equal(t, []any{"task-details"}, body["availableTemplates"])
}

func TestFailNil(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestFromCode(t *testing.T) {
	e := FromCode(ecode.NoData, "")
	assert.Equal(t, http.StatusBadRequest, e.Status)
	assert.Equal(t, ecode.Text(ecode.NoData), e.Message)
}

func TestAttachment(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, Attachment(rec, "application/pdf", "report.pdf", []byte("%PDF-1.3")))

	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="report.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "8", rec.Header().Get("Content-Length"))
}
