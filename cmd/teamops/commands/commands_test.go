package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamops/dashboard/session"
)

type testAPI struct {
	url         string
	dir         string
	conf        string
	sessionPath string
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestAPI(t *testing.T, mux *http.ServeMux) *testAPI {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	api := &testAPI{
		url:         srv.URL,
		dir:         dir,
		conf:        filepath.Join(dir, "config.yaml"),
		sessionPath: filepath.Join(dir, "session.json"),
	}
	conf := "app_name: teamops\n" +
		"api:\n  base_url: " + srv.URL + "/api\n" +
		"session:\n  store: file\n  path: " + api.sessionPath + "\n" +
		"logger:\n  level: 2\n  output: stderr\n"
	require.NoError(t, os.WriteFile(api.conf, []byte(conf), 0o600))
	return api
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

var taskPage = map[string]any{
	"data": []map[string]any{{
		"id":         "t1",
		"title":      "Revisar contrato",
		"status":     "PENDING",
		"priority":   "HIGH",
		"assignedTo": map[string]any{"id": "u1", "name": "Ana"},
		"createdAt":  "2025-01-02T12:00:00Z",
	}},
	"total":       1,
	"currentPage": 1,
	"perPage":     10,
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:")

	out, err = run(t, "version", "--json")
	require.NoError(t, err)
	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info["goVersion"])
}

func TestPDFTemplates(t *testing.T) {
	out, err := run(t, "pdf", "templates", "--json")
	require.NoError(t, err)

	var body struct {
		Templates []string `json:"templates"`
		Count     int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, []string{"task-details", "task-list", "team-report"}, body.Templates)
	assert.Equal(t, 3, body.Count)
}

func TestPDFRenderFromFile(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "task.json")
	require.NoError(t, os.WriteFile(data, []byte(`{"id":"t1","title":"Revisar","status":"PENDING","priority":"LOW","createdAt":"2025-01-02T12:00:00Z"}`), 0o600))
	dest := filepath.Join(dir, "task.pdf")

	out, err := run(t, "pdf", "render", "task-details", "--data", data, "-o", dest)
	require.NoError(t, err)
	assert.Contains(t, out, dest)

	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))
}

func TestPDFRenderUnknownTemplate(t *testing.T) {
	_, err := run(t, "pdf", "render", "invoice")
	require.Error(t, err)
	assert.Equal(t, `Template "invoice" not found`, err.Error())
}

func TestLoginTasksLogout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["password"] != "secret1" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Credenciais inválidas"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token":  "tok",
			"refresh_token": "ref",
			"user":          map[string]any{"id": "u1", "name": "Ana", "email": "ana@acme.com", "role": "MANAGER"},
		})
	})
	mux.HandleFunc("/api/tasks", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthorized"})
			return
		}
		writeJSON(w, http.StatusOK, taskPage)
	})
	api := newTestAPI(t, mux)

	_, err := run(t, "--conf", api.conf, "login", "--email", "ana@acme.com", "--password", "wrong1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Credenciais inválidas")

	out, err := run(t, "--conf", api.conf, "login", "--email", "ana@acme.com", "--password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Bem-vindo, Ana (Gerente)")

	out, err = run(t, "--conf", api.conf, "tasks", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Revisar contrato")
	assert.Contains(t, out, "Pendente")
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "1 - 1 de 1")

	out, err = run(t, "--conf", api.conf, "--json", "tasks", "list")
	require.NoError(t, err)
	var page map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, float64(1), page["total"])

	_, err = run(t, "--conf", api.conf, "logout")
	require.NoError(t, err)
	_, err = session.NewFile(api.sessionPath).Token(context.Background())
	assert.ErrorIs(t, err, session.ErrNoToken)
}

func TestLoginValidation(t *testing.T) {
	api := newTestAPI(t, http.NewServeMux())
	_, err := run(t, "--conf", api.conf, "login", "--email", "not-an-email", "--password", "123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Senha deve ter no mínimo 6 caracteres")
}

func TestTaskStatusAdvances(t *testing.T) {
	var sent map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tasks/t1", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]any{"id": "t1", "title": "Revisar", "status": "PENDING"})
		case http.MethodPut:
			_ = json.NewDecoder(r.Body).Decode(&sent)
			writeJSON(w, http.StatusOK, map[string]any{"id": "t1", "title": "Revisar", "status": sent["status"]})
		}
	})
	api := newTestAPI(t, mux)

	out, err := run(t, "--conf", api.conf, "tasks", "status", "t1")
	require.NoError(t, err)
	assert.Equal(t, "IN_PROGRESS", sent["status"])
	assert.Contains(t, out, "Em Progresso")

	_, err = run(t, "--conf", api.conf, "tasks", "status", "t1", "cancelled")
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", sent["status"])
}

func TestExportCSV(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tasks", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, taskPage)
	})
	api := newTestAPI(t, mux)

	out, err := run(t, "--conf", api.conf, "export", "csv", "tasks", "--dir", api.dir, "--name", "tarefas")
	require.NoError(t, err)
	assert.Contains(t, out, "1 registros exportados")

	b, err := os.ReadFile(filepath.Join(api.dir, "tarefas.csv"))
	require.NoError(t, err)
	lines := strings.Split(string(b), "\r\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID;Nome;Descrição;Status"))
	assert.True(t, strings.HasPrefix(lines[1], `"t1";"Revisar contrato";"";"PENDING";"HIGH";"Ana"`))
}

func TestExportCSVRejectsUnknownList(t *testing.T) {
	_, err := run(t, "export", "csv", "users")
	assert.Error(t, err)
}

func TestNotificationsList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/notifications", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "false", r.URL.Query().Get("isRead"))
		writeJSON(w, http.StatusOK, map[string]any{
			"data": []map[string]any{{
				"id": "n1", "title": "Nova tarefa", "message": "Você recebeu uma tarefa",
				"type": "INFO", "read": false, "createdAt": "2025-01-02T12:00:00Z",
			}},
			"total": 1, "currentPage": 1, "perPage": 10,
		})
	})
	mux.HandleFunc("/api/notifications/unread-count", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"count": 4})
	})
	api := newTestAPI(t, mux)

	out, err := run(t, "--conf", api.conf, "notifications", "list", "--unread")
	require.NoError(t, err)
	assert.Contains(t, out, "Nova tarefa")
	assert.Contains(t, out, "Informação")
	assert.Contains(t, out, "4 não lidas")
}
