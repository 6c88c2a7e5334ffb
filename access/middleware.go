package access

import (
	"github.com/gin-gonic/gin"
	"github.com/teamops/dashboard/consts"
	"github.com/teamops/dashboard/ctxutil"
	"github.com/teamops/dashboard/logging/logger"
	"github.com/teamops/dashboard/net/resp"
	"github.com/teamops/dashboard/security/jwt"
	"github.com/teamops/dashboard/structs"
)

// Authenticate reads the bearer token and stores the caller in the context.
// Tokens are verified when tm has a key and decoded otherwise.
func Authenticate(tm *jwt.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := jwt.BearerToken(c.GetHeader(consts.AuthorizationKey))
		if token == "" {
			resp.Fail(c.Writer, resp.UnAuthorized("missing authorization header"))
			c.Abort()
			return
		}

		claims, err := tm.Parse(token)
		if err != nil {
			logger.Warn(c.Request.Context(), "Invalid token", "error", err)
			resp.Fail(c.Writer, resp.UnAuthorized("invalid token"))
			c.Abort()
			return
		}
		if claims.UserID() == "" {
			resp.Fail(c.Writer, resp.UnAuthorized("invalid token"))
			c.Abort()
			return
		}

		ctx := ctxutil.WithGinContext(c.Request.Context(), c)
		ctx = ctxutil.SetUserID(ctx, claims.UserID())
		ctx = ctxutil.SetUserRole(ctx, string(structs.ParseRole(claims.Role)))
		ctx = ctxutil.SetCompanyID(ctx, claims.CompanyID)
		ctx = ctxutil.SetToken(ctx, token)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole rejects callers whose role is not one of roles.
func RequireRole(roles ...structs.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := CurrentRole(c)
		if role == "" {
			resp.Fail(c.Writer, resp.UnAuthorized("unauthorized"))
			c.Abort()
			return
		}
		if !Allowed(role, roles...) {
			resp.Fail(c.Writer, resp.Forbidden(DeniedMessage).With("title", DeniedTitle))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(consts.UserKey)
}

// CurrentRole returns the authenticated role.
func CurrentRole(c *gin.Context) string {
	return c.GetString(consts.RoleKey)
}
