package user

import (
	"context"
	"testing"

	"github.com/centsible/centsible/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoStoreAndFind(t *testing.T) {
	// given
	db := test_utils.SetupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	// when
	id, err := repo.Store(ctx, User{
		Uid: "uid-1", Username: "alice", Email: "alice@example.com", PasswordHash: "hash",
	})

	// then
	require.NoError(t, err)
	assert.NotZero(t, id)

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)
	assert.Equal(t, "alice", byEmail.Username)
	assert.False(t, byEmail.CreatedAt.IsZero())

	byUid, err := repo.FindByUid(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, id, byUid.ID)
}

func TestRepoFindUnknownUser(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewUserRepo(db)

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.FindByUid(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRepoStoreDuplicates(t *testing.T) {
	// given
	db := test_utils.SetupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()
	_, err := repo.Store(ctx, User{Uid: "uid-1", Username: "alice", Email: "alice@example.com", PasswordHash: "hash"})
	require.NoError(t, err)

	// duplicate email
	_, err = repo.Store(ctx, User{Uid: "uid-2", Username: "other", Email: "alice@example.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// duplicate username
	_, err = repo.Store(ctx, User{Uid: "uid-3", Username: "alice", Email: "new@example.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}
