package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRejectsDuplicate(t *testing.T) {
	repo := NewUserRepo(setupTestDB(t))
	ctx := context.Background()

	first, err := repo.CreateUser(ctx, "alice", "hash-1")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	_, err = repo.CreateUser(ctx, "alice", "hash-2")
	require.ErrorIs(t, err, ErrDuplicateUsername)

	stored, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "hash-1", stored.PasswordHash)
	assert.Equal(t, first.ID, stored.ID)
	assert.False(t, stored.Online)
}

func TestUserIDsAreNotReused(t *testing.T) {
	repo := NewUserRepo(setupTestDB(t))

	a := createUser(t, repo, "alice")
	b := createUser(t, repo, "bob")
	assert.Greater(t, b, a)
}

func TestFindUserID(t *testing.T) {
	repo := NewUserRepo(setupTestDB(t))
	id := createUser(t, repo, "alice")

	found, err := repo.FindUserID(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, id, found)

	_, err = repo.FindUserID(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserByUsernameMissing(t *testing.T) {
	repo := NewUserRepo(setupTestDB(t))

	_, err := repo.GetUserByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAvatarRoundTrip(t *testing.T) {
	repo := NewUserRepo(setupTestDB(t))
	ctx := context.Background()
	createUser(t, repo, "alice")

	avatar, err := repo.GetAvatar(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, avatar)

	require.NoError(t, repo.SetAvatar(ctx, "alice", "data:image/png;base64,AAAA"))
	avatar, err = repo.GetAvatar(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, avatar)
	assert.Equal(t, "data:image/png;base64,AAAA", *avatar)

	require.ErrorIs(t, repo.SetAvatar(ctx, "ghost", "x"), ErrUserNotFound)
	_, err = repo.GetAvatar(ctx, "ghost")
	require.ErrorIs(t, err, ErrUserNotFound)
}
