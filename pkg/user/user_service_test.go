package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService() (*ServiceImpl, *StubUserRepo) {
	repo := NewStubUserRepo()
	tokens := NewTokenIssuer("test-secret", time.Hour)
	return NewUserService(repo, tokens), repo
}

func TestServiceImpl_Register(t *testing.T) {
	service, _ := setupService()
	ctx := context.Background()

	// when
	created, err := service.Register(ctx, "alice", "alice@example.com", "hunter22")

	// then
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, created.Uid)
	assert.Equal(t, "alice", created.Username)
	assert.NotEqual(t, "hunter22", created.PasswordHash)
}

func TestServiceImpl_Register_Validation(t *testing.T) {
	service, _ := setupService()
	ctx := context.Background()

	_, err := service.Register(ctx, "al", "al@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidUsername)

	_, err = service.Register(ctx, "alice", "alice@example.com", "short")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestServiceImpl_Register_DuplicateEmail(t *testing.T) {
	service, _ := setupService()
	ctx := context.Background()

	_, err := service.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, err = service.Register(ctx, "bob", "alice@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestServiceImpl_Login(t *testing.T) {
	service, _ := setupService()
	ctx := context.Background()

	// given
	registered, err := service.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	// when
	token, err := service.Login(ctx, "alice@example.com", "hunter22")

	// then
	require.NoError(t, err)
	claims, err := service.tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, registered.Uid, claims.Uid)
	assert.Equal(t, "alice", claims.Username)
}

func TestServiceImpl_Login_WrongPassword(t *testing.T) {
	service, _ := setupService()
	ctx := context.Background()

	_, err := service.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, err = service.Login(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenIssuer_Validate_Garbage(t *testing.T) {
	tokens := NewTokenIssuer("test-secret", time.Hour)

	_, err := tokens.Validate("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Validate("not.a.valid.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Expired(t *testing.T) {
	tokens := NewTokenIssuer("test-secret", -time.Minute)

	token, err := tokens.Issue(User{Uid: "some-uid", Username: "alice"})
	require.NoError(t, err)

	_, err = tokens.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
