package ctxutil

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestEnsureTraceIDKeepsExisting(t *testing.T) {
	ctx := SetTraceID(context.Background(), "trace-1")
	ctx, id := EnsureTraceID(ctx)
	assert.Equal(t, "trace-1", id)
	assert.Equal(t, "trace-1", GetTraceID(ctx))
}

func TestEnsureTraceIDGenerates(t *testing.T) {
	ctx, id := EnsureTraceID(context.Background())
	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetTraceID(ctx))
}

func TestValuesPropagateToGinContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)

	ctx := FromGinContext(c)
	ctx = SetUserID(ctx, "u-1")
	ctx = SetUserRole(ctx, "MANAGER")

	role, ok := c.Get(userRoleKey)
	assert.True(t, ok)
	assert.Equal(t, "MANAGER", role)
	assert.Equal(t, "u-1", GetUserID(ctx))
	assert.Equal(t, "", GetCompanyID(ctx))
}
