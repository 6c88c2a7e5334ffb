package ctxutil

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/teamops/dashboard/consts"
)

const (
	ginContextKey = consts.GinContextKey
	userIDKey     = consts.UserKey
	userRoleKey   = consts.RoleKey
	companyIDKey  = consts.CompanyKey
	tokenKey      = consts.TokenKey
	TraceIDKey    = "trace_id"
)

// FromGinContext extracts the context.Context from *gin.Context.
func FromGinContext(c *gin.Context) context.Context {
	return WithGinContext(c.Request.Context(), c)
}

// WithGinContext returns a context.Context that embeds the *gin.Context.
func WithGinContext(ctx context.Context, c *gin.Context) context.Context {
	return context.WithValue(ctx, ginContextKey, c)
}

// GetGinContext extracts *gin.Context from context.Context if it exists.
func GetGinContext(ctx context.Context) (*gin.Context, bool) {
	if c, ok := ctx.Value(ginContextKey).(*gin.Context); ok {
		return c, ok
	}
	return nil, false
}

// GetValue retrieves a value from the context.
func GetValue(ctx context.Context, key string) any {
	if ctx == nil {
		return nil
	}
	if c, ok := GetGinContext(ctx); ok {
		if val, exists := c.Get(key); exists {
			return val
		}
	}
	return ctx.Value(key)
}

// SetValue sets a value to the context.
func SetValue(ctx context.Context, key string, val any) context.Context {
	if c, ok := GetGinContext(ctx); ok {
		c.Set(key, val)
	}
	return context.WithValue(ctx, key, val)
}

func getString(ctx context.Context, key string) string {
	if v, ok := GetValue(ctx, key).(string); ok {
		return v
	}
	return ""
}

// SetUserID sets user id to context.Context.
func SetUserID(ctx context.Context, uid string) context.Context {
	return SetValue(ctx, userIDKey, uid)
}

// GetUserID gets user id from context.Context.
func GetUserID(ctx context.Context) string {
	return getString(ctx, userIDKey)
}

// SetUserRole sets the user role to context.Context.
func SetUserRole(ctx context.Context, role string) context.Context {
	return SetValue(ctx, userRoleKey, role)
}

// GetUserRole gets the user role from context.Context.
func GetUserRole(ctx context.Context) string {
	return getString(ctx, userRoleKey)
}

// SetCompanyID sets company id to context.Context.
func SetCompanyID(ctx context.Context, cid string) context.Context {
	return SetValue(ctx, companyIDKey, cid)
}

// GetCompanyID gets company id from context.Context.
func GetCompanyID(ctx context.Context) string {
	return getString(ctx, companyIDKey)
}

// SetToken sets token to context.Context.
func SetToken(ctx context.Context, token string) context.Context {
	return SetValue(ctx, tokenKey, token)
}

// GetToken gets token from context.Context.
func GetToken(ctx context.Context) string {
	return getString(ctx, tokenKey)
}

// GetTraceID gets trace id from context.Context or gin.Context.
func GetTraceID(ctx context.Context) string {
	return getString(ctx, TraceIDKey)
}

// SetTraceID sets trace id to context.Context and gin.Context if available.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	return SetValue(ctx, TraceIDKey, traceID)
}

// EnsureTraceID ensures that a trace ID exists in the context.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if traceID := GetTraceID(ctx); traceID != "" {
		return ctx, traceID
	}
	traceID := uuid.NewString()
	return SetTraceID(ctx, traceID), traceID
}
