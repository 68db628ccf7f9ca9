package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arete/coaching-app/internal/cache"
	"arete/coaching-app/internal/domain"
	"arete/coaching-app/internal/store"
)

const testJWTSecret = "test-secret"

func newAuthFixture(t *testing.T) (AuthService, *store.Durable[domain.User]) {
	t.Helper()
	users := store.NewDurable[domain.User](store.CollectionUsers, store.NewMemoryRemote[domain.User](), cache.New())
	return NewAuthService(users, testJWTSecret, time.Hour), users
}

func TestRegisterCreatesUser(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthFixture(t)

	u, err := svc.Register(ctx, "alice", "alice@example.com", "secret123", domain.RoleStudent)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NotEmpty(t, u.ID)
	assert.Empty(t, u.PasswordHash, "response must not leak the hash")

	stored, err := users.Read(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture(t)

	_, err := svc.Register(ctx, "alice", "alice@example.com", "secret123", domain.RoleStudent)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "other", "Alice@Example.com", "different", domain.RoleTrainer)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterRejectsEmptyFields(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), "", "a@example.com", "pw", domain.RoleStudent)
	assert.Error(t, err)
}

func TestLoginReturnsSignedToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture(t)

	registered, err := svc.Register(ctx, "alice", "alice@example.com", "secret123", domain.RoleTrainer)
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, domain.RoleTrainer, claims.Role)
	assert.Equal(t, "coaching-app", claims.Issuer)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture(t)

	_, err := svc.Register(ctx, "alice", "alice@example.com", "secret123", domain.RoleStudent)
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "pw")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestNewAuthServicePanicsWithoutSecret(t *testing.T) {
	users := store.NewDurable[domain.User](store.CollectionUsers, store.NewMemoryRemote[domain.User](), cache.New())
	assert.Panics(t, func() {
		NewAuthService(users, "", time.Hour)
	})
}
