package apiclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/teamops/dashboard/session"
	"github.com/teamops/dashboard/structs"
	"github.com/teamops/dashboard/validation/validator"
)

// AuthService talks to /auth.
type AuthService struct{ c *Client }

// SignIn validates input, authenticates and stores the credentials.
func (s *AuthService) SignIn(ctx context.Context, in *structs.SignInInput) (*structs.SignInResponse, error) {
	if err := validator.Validate(in); err != nil {
		return nil, err
	}

	var out structs.SignInResponse
	if err := s.c.do(ctx, &request{method: "POST", path: "/auth/signin", body: in, skipAuth: true}, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, errors.New("api: signin returned no access token")
	}

	store := s.c.store
	if err := store.SaveToken(ctx, out.AccessToken, out.ExpiresIn); err != nil {
		return nil, fmt.Errorf("failed to save token: %w", err)
	}
	if out.RefreshToken != "" {
		if err := store.SaveRefreshToken(ctx, out.RefreshToken); err != nil {
			return nil, fmt.Errorf("failed to save refresh token: %w", err)
		}
	}
	if out.User.ID != "" {
		if err := store.SaveUser(ctx, &out.User); err != nil {
			return nil, fmt.Errorf("failed to save user: %w", err)
		}
	}
	return &out, nil
}

// RefreshToken exchanges the stored refresh token for a new access token.
// It returns nil, nil when no refresh token is stored.
func (s *AuthService) RefreshToken(ctx context.Context) (*structs.RefreshResponse, error) {
	return s.c.refreshToken(ctx)
}

// Me returns the authenticated user.
func (s *AuthService) Me(ctx context.Context) (*structs.AuthUser, error) {
	var out structs.AuthUser
	if err := s.c.Get(ctx, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout forgets the stored tokens. The server is not contacted.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.c.store.RemoveTokens(ctx)
}

func (c *Client) refreshToken(ctx context.Context) (*structs.RefreshResponse, error) {
	rt, err := c.store.RefreshToken(ctx)
	if errors.Is(err, session.ErrNoRefreshToken) || (err == nil && rt == "") {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out structs.RefreshResponse
	err = c.do(ctx, &request{
		method:   "POST",
		path:     "/auth/refresh",
		body:     map[string]string{"refresh_token": rt},
		skipAuth: true,
	}, &out)
	if err == nil && out.AccessToken == "" {
		err = errors.New("api: refresh returned no access token")
	}
	if err != nil {
		if rmErr := c.store.RemoveTokens(ctx); rmErr != nil {
			return nil, errors.Join(err, rmErr)
		}
		return nil, err
	}

	if err := c.store.SaveToken(ctx, out.AccessToken, out.ExpiresIn); err != nil {
		return nil, fmt.Errorf("failed to save token: %w", err)
	}
	if out.RefreshToken != "" {
		if err := c.store.SaveRefreshToken(ctx, out.RefreshToken); err != nil {
			return nil, fmt.Errorf("failed to save refresh token: %w", err)
		}
	}
	return &out, nil
}
