package repositories

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLPresenceRoundTrip(t *testing.T) {
	database := setupTestDB(t)
	users := NewUserRepo(database)
	presence := NewSQLPresence(database)
	ctx := context.Background()
	createUser(t, users, "alice")
	createUser(t, users, "bob")

	require.NoError(t, presence.SetOnline(ctx, "alice", true))
	require.NoError(t, presence.SetOnline(ctx, "alice", true))

	online, err := presence.IsOnline(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, online)

	status, err := presence.OnlineStatus(ctx, []string{"alice", "bob"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"alice": true, "bob": false}, status)

	require.NoError(t, presence.SetOnline(ctx, "alice", false))
	online, err = presence.IsOnline(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, online)
}

func TestSQLPresenceUnknownUserIsNoop(t *testing.T) {
	presence := NewSQLPresence(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, presence.SetOnline(ctx, "ghost", true))
	online, err := presence.IsOnline(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, online)

	status, err := presence.OnlineStatus(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, status)
}

func TestRedisPresenceRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	presence := NewRedisPresence(client)
	ctx := context.Background()

	require.NoError(t, presence.SetOnline(ctx, "alice", true))
	assert.True(t, mr.Exists("presence:alice"))

	online, err := presence.IsOnline(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, online)

	status, err := presence.OnlineStatus(ctx, []string{"alice", "bob"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"alice": true, "bob": false}, status)

	require.NoError(t, presence.SetOnline(ctx, "alice", false))
	require.NoError(t, presence.SetOnline(ctx, "alice", false))
	online, err = presence.IsOnline(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, online)
}

func TestDialRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := DialRedis(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	client.Close()

	_, err = DialRedis(context.Background(), "not a url")
	require.Error(t, err)
}
