// Package ctxutil provides helpers for request-scoped values shared by the
// HTTP server, the API client and the logger.
//
// Values are stored both on the standard context and, when present, on the
// embedded *gin.Context so handlers and middleware observe the same data:
//
//	ctx = ctxutil.SetUserID(ctx, "user-123")
//	ctx = ctxutil.SetUserRole(ctx, "MANAGER")
//	role := ctxutil.GetUserRole(ctx)
//
// Every log entry written through logging/logger carries the trace id found
// in the context:
//
//	ctx, traceID := ctxutil.EnsureTraceID(ctx)
package ctxutil
