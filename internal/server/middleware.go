package server

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teamops/dashboard/consts"
	"github.com/teamops/dashboard/ctxutil"
	"github.com/teamops/dashboard/logging/observes"
	"github.com/teamops/dashboard/net/resp"
)

// traceMiddleware reuses the caller's trace id or issues one, and echoes it
// in the response.
func (s *Server) traceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.WithGinContext(c.Request.Context(), c)
		traceID := c.GetHeader(consts.TraceKey)
		if traceID != "" {
			ctx = ctxutil.SetTraceID(ctx, traceID)
		} else {
			ctx, traceID = ctxutil.EnsureTraceID(ctx)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Header(consts.TraceKey, traceID)
		c.Next()
	}
}

func (s *Server) recoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		ctx := c.Request.Context()
		err := fmt.Errorf("panic: %v", recovered)
		s.logger.Error(ctx, "Recovered from panic", "path", c.Request.URL.Path, "error", err)
		observes.CaptureError(ctx, err, map[string]string{"path": c.Request.URL.Path})
		resp.Fail(c.Writer, resp.InternalServer("internal server error"))
		c.Abort()
	})
}

func (s *Server) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		s.logger.Info(c.Request.Context(), "HTTP request",
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
