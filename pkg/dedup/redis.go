package dedup

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs the guard with Redis so the window holds across
// multiple backend instances.
type RedisStore struct {
	client *redis.Client
}

// OpenRedis connects to Redis and verifies the connection.
func OpenRedis(addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client}, nil
}

// Claim implements Store. SET NX is atomic, so concurrent submissions
// across instances race safely.
func (r *RedisStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, key, 1, ttl).Result()
}
