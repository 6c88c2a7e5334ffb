package access

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jwtstd "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamops/dashboard/security/jwt"
	"github.com/teamops/dashboard/structs"
)

func labels(links []Link) []string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.Label
	}
	return out
}

func TestLinksFor(t *testing.T) {
	all := []string{"Visão Geral", "Colaboradores", "Tarefas", "Times"}
	assert.Equal(t, all, labels(LinksFor("ADMIN")))
	assert.Equal(t, all, labels(LinksFor("MANAGER")))
	assert.Equal(t, []string{"Visão Geral", "Tarefas"}, labels(LinksFor("EMPLOYEE")))
	assert.Equal(t, []string{"Visão Geral", "Tarefas"}, labels(LinksFor("GUEST")))
	assert.Equal(t, []string{"Visão Geral", "Tarefas"}, labels(LinksFor("")))
}

func TestCanOpen(t *testing.T) {
	assert.True(t, CanOpen("EMPLOYEE", "/dashboard"))
	assert.True(t, CanOpen("EMPLOYEE", "/dashboard/tasks/42"))
	assert.False(t, CanOpen("EMPLOYEE", "/dashboard/employees"))
	assert.False(t, CanOpen("EMPLOYEE", "/dashboard/teams/t1"))
	assert.True(t, CanOpen("MANAGER", "/dashboard/teams/t1"))
	assert.True(t, CanOpen("EMPLOYEE", "/login"))
	assert.True(t, CanManage("ADMIN"))
	assert.False(t, CanManage("EMPLOYEE"))
}

func newRouter(tm *jwt.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/", Authenticate(tm))
	g.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUserID(c), "role": CurrentRole(c)})
	})
	g.GET("/teams", RequireRole(structs.RoleAdmin, structs.RoleManager), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func token(t *testing.T, tm *jwt.TokenManager, role string, expiry time.Duration) string {
	t.Helper()
	tok, err := tm.GenerateAccessTokenWithExpiry("jti", jwt.Claims{
		Role:             role,
		RegisteredClaims: jwtstd.RegisteredClaims{Subject: "u1"},
	}, expiry)
	require.NoError(t, err)
	return tok
}

func do(r http.Handler, path, tok string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	tm := jwt.NewTokenManager("secret")
	r := newRouter(tm)

	w := do(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "/me", token(t, tm, "MANAGER", -time.Minute))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "/me", token(t, tm, "MANAGER", time.Hour))
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"id": "u1", "role": "MANAGER"}, body)
}

func TestRequireRole(t *testing.T) {
	tm := jwt.NewTokenManager("secret")
	r := newRouter(tm)

	w := do(r, "/teams", token(t, tm, "ADMIN", time.Hour))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, "/teams", token(t, tm, "EMPLOYEE", time.Hour))
	require.Equal(t, http.StatusForbidden, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, DeniedMessage, body["error"])
	assert.Equal(t, DeniedTitle, body["title"])
}
