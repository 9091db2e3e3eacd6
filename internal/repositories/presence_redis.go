package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisPresence keeps presence as one key per online user.
type RedisPresence struct {
	client *redis.Client
}

// NewRedisPresence wraps an existing client.
func NewRedisPresence(client *redis.Client) *RedisPresence {
	return &RedisPresence{client: client}
}

// DialRedis parses url and verifies the connection.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func presenceKey(username string) string {
	return fmt.Sprintf("presence:%s", username)
}

// SetOnline sets or clears the presence key.
func (p *RedisPresence) SetOnline(ctx context.Context, username string, online bool) error {
	if online {
		return p.client.Set(ctx, presenceKey(username), "1", 0).Err()
	}
	return p.client.Del(ctx, presenceKey(username)).Err()
}

// IsOnline reports whether the presence key exists.
func (p *RedisPresence) IsOnline(ctx context.Context, username string) (bool, error) {
	err := p.client.Get(ctx, presenceKey(username)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// OnlineStatus resolves every username with a single MGET.
func (p *RedisPresence) OnlineStatus(ctx context.Context, usernames []string) (map[string]bool, error) {
	result := make(map[string]bool, len(usernames))
	if len(usernames) == 0 {
		return result, nil
	}

	keys := make([]string, 0, len(usernames))
	for _, name := range usernames {
		keys = append(keys, presenceKey(name))
	}
	values, err := p.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, name := range usernames {
		result[name] = values[i] != nil
	}
	return result, nil
}
