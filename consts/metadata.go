package consts

// AuthorizationKey Authorization header key
const AuthorizationKey string = "Authorization"

// BearerKey Bearer token prefix
const BearerKey string = "Bearer "

// GinContextKey gin context key
const GinContextKey = "gin-context"

// TraceKey trace id header
const TraceKey string = "X-Trace-Id"

// UserKey global user id
const UserKey string = "x-md-uid"

// RoleKey global user role
const RoleKey string = "x-md-role"

// CompanyKey global company id
const CompanyKey string = "x-md-cid"

// TokenKey global token
const TokenKey string = "x-md-token"

// AppName is the default application name used in documents and user agents
const AppName = "Team Ops Dashboard"
