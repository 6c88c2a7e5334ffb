package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamops/dashboard/structs"
)

func backends(t *testing.T) map[string]*Session {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })

	return map[string]*Session{
		"memory": NewMemory(),
		"file":   NewFile(filepath.Join(t.TempDir(), "nested", "session.json")),
		"redis":  NewRedis(rc, "teamops:session:"),
	}
}

func TestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Token(ctx)
			assert.ErrorIs(t, err, ErrNoToken)
			_, err = s.RefreshToken(ctx)
			assert.ErrorIs(t, err, ErrNoRefreshToken)
			_, err = s.User(ctx)
			assert.ErrorIs(t, err, ErrNoUser)

			expired, err := s.IsTokenExpired(ctx)
			require.NoError(t, err)
			assert.False(t, expired)

			exp := int64(3600)
			require.NoError(t, s.SaveToken(ctx, "tok", &exp))
			require.NoError(t, s.SaveRefreshToken(ctx, "ref"))
			require.NoError(t, s.SaveUser(ctx, &structs.AuthUser{ID: "u1", Name: "Ana", Role: structs.RoleAdmin}))

			tok, err := s.Token(ctx)
			require.NoError(t, err)
			assert.Equal(t, "tok", tok)
			u, err := s.User(ctx)
			require.NoError(t, err)
			assert.Equal(t, structs.RoleAdmin, u.Role)

			at, ok, err := s.Expiry(ctx)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(time.Hour), at, 5*time.Second)

			require.NoError(t, s.RemoveTokens(ctx))
			_, err = s.Token(ctx)
			assert.ErrorIs(t, err, ErrNoToken)
			_, err = s.User(ctx)
			assert.NoError(t, err)

			require.NoError(t, s.Clear(ctx))
			_, err = s.User(ctx)
			assert.ErrorIs(t, err, ErrNoUser)
			_, ok, _ = s.Expiry(ctx)
			assert.False(t, ok)
		})
	}
}

func TestIsTokenExpired(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	exp := int64(60)
	require.NoError(t, s.SaveToken(ctx, "tok", &exp))

	expired, err := s.IsTokenExpired(ctx)
	require.NoError(t, err)
	assert.False(t, expired)

	s.now = func() time.Time { return base.Add(61 * time.Second) }
	expired, err = s.IsTokenExpired(ctx)
	require.NoError(t, err)
	assert.True(t, expired)
}

func TestSaveTokenWithoutExpiryKeepsOldExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	exp := int64(10)
	require.NoError(t, s.SaveToken(ctx, "a", &exp))
	require.NoError(t, s.SaveToken(ctx, "b", nil))

	_, ok, err := s.Expiry(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRemoveTokensDropsExpiry(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
			s.now = func() time.Time { return base }
			exp := int64(1)
			require.NoError(t, s.SaveToken(ctx, "old", &exp))
			require.NoError(t, s.SaveRefreshToken(ctx, "ref"))

			s.now = func() time.Time { return base.Add(time.Hour) }
			require.NoError(t, s.RemoveTokens(ctx))

			_, ok, err := s.Expiry(ctx)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.SaveToken(ctx, "fresh", nil))
			expired, err := s.IsTokenExpired(ctx)
			require.NoError(t, err)
			assert.False(t, expired)
		})
	}
}

func TestFileBackendPermissions(t *testing.T) {
	p := filepath.Join(t.TempDir(), "session.json")
	s := NewFile(p)
	require.NoError(t, s.SaveRefreshToken(context.Background(), "r"))

	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, s.Clear(context.Background()))
	_, err = os.Stat(p)
	assert.True(t, os.IsNotExist(err))
}

func TestFileBackendCorrupt(t *testing.T) {
	p := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(p, []byte("{not json"), 0o600))
	_, err := NewFile(p).Token(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoToken)
}
