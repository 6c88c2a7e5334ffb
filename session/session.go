package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/teamops/dashboard/structs"
)

// Storage keys.
const (
	KeyToken        = "token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
	KeyTokenExpiry  = "token_expiry"
)

var (
	ErrNoToken        = errors.New("no token stored")
	ErrNoRefreshToken = errors.New("no refresh token stored")
	ErrNoUser         = errors.New("no user stored")
)

// Backend is a string key/value store.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Store reads and writes credentials.
type Store interface {
	Token(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string, expiresIn *int64) error
	RefreshToken(ctx context.Context) (string, error)
	SaveRefreshToken(ctx context.Context, token string) error
	User(ctx context.Context) (*structs.AuthUser, error)
	SaveUser(ctx context.Context, user *structs.AuthUser) error
	IsTokenExpired(ctx context.Context) (bool, error)
	Expiry(ctx context.Context) (time.Time, bool, error)
	RemoveTokens(ctx context.Context) error
	Clear(ctx context.Context) error
}

// Session implements Store over a Backend.
type Session struct {
	backend Backend
	now     func() time.Time
}

// New creates a Store over backend.
func New(backend Backend) *Session {
	return &Session{backend: backend, now: time.Now}
}

func (s *Session) getString(ctx context.Context, key string, missing error) (string, error) {
	v, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("session: read %s: %w", key, err)
	}
	if !ok || v == "" {
		return "", missing
	}
	return v, nil
}

// Token returns the access token or ErrNoToken.
func (s *Session) Token(ctx context.Context) (string, error) {
	return s.getString(ctx, KeyToken, ErrNoToken)
}

// SaveToken stores the access token. When expiresIn (seconds) is given the
// expiry becomes now + expiresIn.
func (s *Session) SaveToken(ctx context.Context, token string, expiresIn *int64) error {
	if err := s.backend.Set(ctx, KeyToken, token); err != nil {
		return fmt.Errorf("session: save token: %w", err)
	}
	if expiresIn == nil {
		return nil
	}
	expiry := s.now().Add(time.Duration(*expiresIn) * time.Second).UnixMilli()
	if err := s.backend.Set(ctx, KeyTokenExpiry, strconv.FormatInt(expiry, 10)); err != nil {
		return fmt.Errorf("session: save token expiry: %w", err)
	}
	return nil
}

// RefreshToken returns the refresh token or ErrNoRefreshToken.
func (s *Session) RefreshToken(ctx context.Context) (string, error) {
	return s.getString(ctx, KeyRefreshToken, ErrNoRefreshToken)
}

// SaveRefreshToken stores the refresh token.
func (s *Session) SaveRefreshToken(ctx context.Context, token string) error {
	if err := s.backend.Set(ctx, KeyRefreshToken, token); err != nil {
		return fmt.Errorf("session: save refresh token: %w", err)
	}
	return nil
}

// User returns the stored user or ErrNoUser.
func (s *Session) User(ctx context.Context) (*structs.AuthUser, error) {
	raw, err := s.getString(ctx, KeyUser, ErrNoUser)
	if err != nil {
		return nil, err
	}
	var u structs.AuthUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("session: decode user: %w", err)
	}
	return &u, nil
}

// SaveUser stores the user as JSON.
func (s *Session) SaveUser(ctx context.Context, user *structs.AuthUser) error {
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}
	if err := s.backend.Set(ctx, KeyUser, string(b)); err != nil {
		return fmt.Errorf("session: save user: %w", err)
	}
	return nil
}

// Expiry returns the stored expiry and false when none is stored.
func (s *Session) Expiry(ctx context.Context) (time.Time, bool, error) {
	raw, ok, err := s.backend.Get(ctx, KeyTokenExpiry)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("session: read expiry: %w", err)
	}
	if !ok || raw == "" {
		return time.Time{}, false, nil
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false, nil
	}
	return time.UnixMilli(ms), true, nil
}

// IsTokenExpired reports whether the stored expiry has passed. No stored
// expiry means the token is not expired.
func (s *Session) IsTokenExpired(ctx context.Context) (bool, error) {
	exp, ok, err := s.Expiry(ctx)
	if err != nil || !ok {
		return false, err
	}
	return s.now().After(exp), nil
}

// RemoveTokens deletes the access and refresh tokens along with the token expiry.
func (s *Session) RemoveTokens(ctx context.Context) error {
	if err := s.backend.Delete(ctx, KeyToken, KeyRefreshToken, KeyTokenExpiry); err != nil {
		return fmt.Errorf("session: remove tokens: %w", err)
	}
	return nil
}

// Clear deletes every stored key.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.backend.Delete(ctx, KeyToken, KeyRefreshToken, KeyUser, KeyTokenExpiry); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}
