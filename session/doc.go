// Package session persists the signed-in user's credentials.
//
// Four keys are kept: token, refresh_token, user and token_expiry. The
// expiry is written only when the API returns expires_in, so a token without
// an expiry is treated as valid. Backends: in-memory, a JSON file for the
// CLI, and Redis for shared deployments.
package session
