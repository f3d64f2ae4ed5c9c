package service

import (
	"context"
	"testing"

	"github.com/sankalp-nadiger/Auditryx/internal/config"
	"github.com/sankalp-nadiger/Auditryx/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testAuthService() (AuthService, *stubUserRepo) {
	users := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return NewAuthService(users, cfg), users
}

func TestRegister_HashesPassword(t *testing.T) {
	svc, users := testAuthService()

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "buyer@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", resp.Email)

	stored, err := users.FindByEmail(context.Background(), "buyer@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := testAuthService()

	req := dto.RegisterRequest{Email: "buyer@example.com", Password: "s3cret-pass"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _ := testAuthService()
	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "buyer@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "buyer@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "buyer@example.com", resp.User.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := testAuthService()
	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "buyer@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "buyer@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := testAuthService()

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	svc, _ := testAuthService()
	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "buyer@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "buyer@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.User.ID, refreshed.User.ID)
}

func TestRefresh_RejectsGarbage(t *testing.T) {
	svc, _ := testAuthService()

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.Error(t, err)
}
