package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerReq(username string) RegisterRequest {
	return RegisterRequest{
		Username: username,
		Email:    "  " + username + "@Example.com ",
		Password: "password123",
		FullName: "Demo User",
	}
}

func TestAuthService_Register(t *testing.T) {
	env := newTestEnv(t)

	user, access, refresh, err := env.svc.Auth.Register(env.ctx, registerReq("demo"))
	require.NoError(t, err)
	assert.Equal(t, "demo@example.com", user.Email)
	assert.Equal(t, "DU", user.Initials)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	token, err := env.svc.Auth.ValidateToken(access)
	require.NoError(t, err)
	sub, err := env.svc.Auth.GetUserIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sub)

	t.Run("duplicate email", func(t *testing.T) {
		req := registerReq("other")
		req.Email = "DEMO@example.com"
		_, _, _, err := env.svc.Auth.Register(env.ctx, req)
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("duplicate username", func(t *testing.T) {
		req := registerReq("demo")
		req.Email = "fresh@example.com"
		_, _, _, err := env.svc.Auth.Register(env.ctx, req)
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("short password", func(t *testing.T) {
		req := registerReq("shorty")
		req.Password = "12345"
		_, _, _, err := env.svc.Auth.Register(env.ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing full name", func(t *testing.T) {
		req := registerReq("nameless")
		req.FullName = "   "
		_, _, _, err := env.svc.Auth.Register(env.ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestAuthService_LoginRefreshLogout(t *testing.T) {
	env := newTestEnv(t)
	registered, _, _, err := env.svc.Auth.Register(env.ctx, registerReq("demo"))
	require.NoError(t, err)

	_, _, _, err = env.svc.Auth.Login(env.ctx, "demo@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, _, err = env.svc.Auth.Login(env.ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	user, _, refresh, err := env.svc.Auth.Login(env.ctx, "Demo@Example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotNil(t, user.LastLoginAt)

	stored, err := env.repos.UserRepo.FindByID(env.ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)

	access, err := env.svc.Auth.Refresh(env.ctx, refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)

	require.NoError(t, env.svc.Auth.Logout(env.ctx, refresh))
	_, err = env.svc.Auth.Refresh(env.ctx, refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// logging out twice is harmless
	assert.NoError(t, env.svc.Auth.Logout(env.ctx, refresh))
}

func TestAuthService_ExpiredRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	auth := env.svc.Auth.(*authService)

	_, _, refresh, err := auth.Register(env.ctx, registerReq("demo"))
	require.NoError(t, err)

	auth.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
	_, err = auth.Refresh(env.ctx, refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	stored, err := env.repos.UserRepo.FindRefreshToken(env.ctx, refresh)
	require.NoError(t, err)
	assert.Nil(t, stored, "expired token is removed on use")
}

func TestAuthService_PurgeExpiredTokens(t *testing.T) {
	env := newTestEnv(t)
	auth := env.svc.Auth.(*authService)

	_, _, _, err := auth.Register(env.ctx, registerReq("demo"))
	require.NoError(t, err)
	_, _, _, err = auth.Login(env.ctx, "demo@example.com", "password123")
	require.NoError(t, err)

	n, err := auth.PurgeExpiredTokens(env.ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	auth.now = func() time.Time { return time.Now().Add(30 * 24 * time.Hour) }
	n, err = auth.PurgeExpiredTokens(env.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestAuthService_ValidateToken(t *testing.T) {
	env := newTestEnv(t)
	auth := env.svc.Auth.(*authService)

	_, access, _, err := auth.Register(env.ctx, registerReq("demo"))
	require.NoError(t, err)

	_, err = auth.ValidateToken(access + "x")
	assert.Error(t, err)

	auth.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = auth.ValidateToken(access)
	assert.Error(t, err, "access token expires after JWT_EXPIRY hours")
}

func TestAuthService_Me(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "alice")

	got, err := env.svc.Auth.Me(env.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = env.svc.Auth.Me(env.ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
