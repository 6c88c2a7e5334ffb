package jwt

import (
	"testing"
	"time"

	jwtstd "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleClaims() Claims {
	return Claims{
		Email:     "ana@acme.com",
		Role:      "MANAGER",
		CompanyID: "c1",
		RegisteredClaims: jwtstd.RegisteredClaims{
			Subject: "u1",
		},
	}
}

func TestGenerateAndValidate(t *testing.T) {
	tm := NewTokenManager("secret")
	token, err := tm.GenerateAccessToken("j1", sampleClaims())
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID())
	assert.Equal(t, "MANAGER", claims.Role)
	assert.Equal(t, "c1", claims.CompanyID)
	assert.Equal(t, "j1", claims.ID)
	assert.Greater(t, claims.ExpiresIn(time.Now()), 50*time.Minute)
}

func TestValidateWrongKey(t *testing.T) {
	token, err := NewTokenManager("a").GenerateAccessToken("j", sampleClaims())
	require.NoError(t, err)

	_, err = NewTokenManager("b").ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	tm := NewTokenManager("secret")
	token, err := tm.GenerateAccessTokenWithExpiry("j", sampleClaims(), -time.Minute)
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Equal(t, "u1", claims.UserID())

	_, err = NewTokenManager("").Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestNeedKey(t *testing.T) {
	_, err := NewTokenManager("").GenerateAccessToken("j", sampleClaims())
	assert.ErrorIs(t, err, ErrNeedTokenProvider)
}

func TestDecodeUnverified(t *testing.T) {
	token, err := NewTokenManager("whatever").GenerateAccessToken("j", sampleClaims())
	require.NoError(t, err)

	claims, err := DecodeUnverified(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@acme.com", claims.Email)

	exp, ok := ExpiryTime(token)
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	_, err = DecodeUnverified("not-a-token")
	assert.ErrorIs(t, err, ErrTokenParsing)
	_, ok = ExpiryTime("not-a-token")
	assert.False(t, ok)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer abc"))
	assert.Empty(t, BearerToken("Basic abc"))
	assert.Empty(t, BearerToken("Bearer "))
}
