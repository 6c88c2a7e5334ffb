package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwtstd "github.com/golang-jwt/jwt/v5"
)

// TokenError represents JWT token related errors
type TokenError string

func (e TokenError) Error() string {
	return string(e)
}

const (
	DefaultAccessTokenExpire  = time.Hour
	DefaultRefreshTokenExpire = time.Hour * 24 * 7

	ErrNeedTokenProvider = TokenError("cannot sign token without token provider")
	ErrInvalidToken      = TokenError("invalid token")
	ErrTokenParsing      = TokenError("token parsing error")
	ErrTokenExpired      = TokenError("token expired")
)

// Claims are the claims issued by the dashboard API. The user id travels in sub.
type Claims struct {
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role,omitempty"`
	CompanyID string `json:"companyId,omitempty"`
	jwtstd.RegisteredClaims
}

// UserID returns the subject claim.
func (c *Claims) UserID() string {
	return c.Subject
}

// ExpiresIn returns the remaining lifetime, zero when there is no exp claim or it has passed.
func (c *Claims) ExpiresIn(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	if d := c.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// TokenManager handles JWT token operations
type TokenManager struct {
	key string
}

// NewTokenManager creates a new TokenManager instance
func NewTokenManager(key string) *TokenManager {
	return &TokenManager{key: key}
}

// CanVerify reports whether the manager holds a signing key.
func (jtm *TokenManager) CanVerify() bool {
	return jtm != nil && jtm.key != ""
}

// validateKey validates the token key
func (jtm *TokenManager) validateKey() error {
	if !jtm.CanVerify() {
		return ErrNeedTokenProvider
	}
	return nil
}

// generateToken signs claims with HS256
func (jtm *TokenManager) generateToken(claims *Claims) (string, error) {
	if err := jtm.validateKey(); err != nil {
		return "", err
	}
	t := jwtstd.NewWithClaims(jwtstd.SigningMethodHS256, claims)
	return t.SignedString([]byte(jtm.key))
}

// GenerateAccessToken generates an access token with a default expiration of one hour
func (jtm *TokenManager) GenerateAccessToken(jti string, claims Claims) (string, error) {
	return jtm.GenerateAccessTokenWithExpiry(jti, claims, DefaultAccessTokenExpire)
}

// GenerateAccessTokenWithExpiry generates an access token with a custom expiration duration.
// A negative expiry yields an already expired token.
func (jtm *TokenManager) GenerateAccessTokenWithExpiry(jti string, claims Claims, expiry time.Duration) (string, error) {
	now := time.Now()
	claims.ID = jti
	claims.IssuedAt = jwtstd.NewNumericDate(now)
	claims.ExpiresAt = jwtstd.NewNumericDate(now.Add(expiry))
	return jtm.generateToken(&claims)
}

// GenerateRefreshToken generates a refresh token with a default expiration of 7 days
func (jtm *TokenManager) GenerateRefreshToken(jti, userID string) (string, error) {
	return jtm.GenerateAccessTokenWithExpiry(jti, Claims{
		RegisteredClaims: jwtstd.RegisteredClaims{Subject: userID},
	}, DefaultRefreshTokenExpire)
}

// ValidateToken parses and verifies a token signed with the manager key
func (jtm *TokenManager) ValidateToken(tokenString string) (*Claims, error) {
	if err := jtm.validateKey(); err != nil {
		return nil, err
	}

	claims := &Claims{}
	token, err := jwtstd.ParseWithClaims(tokenString, claims, func(token *jwtstd.Token) (any, error) {
		if _, ok := token.Method.(*jwtstd.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jtm.key), nil
	})
	if err != nil {
		if errors.Is(err, jwtstd.ErrTokenExpired) {
			return claims, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Parse verifies the token when the manager has a key and decodes it otherwise.
func (jtm *TokenManager) Parse(tokenString string) (*Claims, error) {
	if jtm.CanVerify() {
		return jtm.ValidateToken(tokenString)
	}
	claims, err := DecodeUnverified(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return claims, ErrTokenExpired
	}
	return claims, nil
}

// DecodeUnverified decodes the claims without checking the signature.
// The CLI uses it to read tokens issued by the upstream API.
func DecodeUnverified(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwtstd.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenParsing, err)
	}
	return claims, nil
}

// ExpiryTime returns the exp claim of a token without verifying it.
func ExpiryTime(tokenString string) (time.Time, bool) {
	claims, err := DecodeUnverified(tokenString)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// BearerToken strips the Bearer scheme from an Authorization header value.
func BearerToken(header string) string {
	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
