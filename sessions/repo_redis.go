package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	apperrors "github.com/shuzaifak/Property-Sync-Owner/internal/errors"
)

var _ Repo = (*RedisRepo)(nil)

const defaultRedisTimeout = 5 * time.Second

// RedisConfig captures the settings for the redis session repo
type RedisConfig struct {
	Addr    string
	DB      int
	TTL     time.Duration // 0 means keys never expire
	Timeout time.Duration
}

// RedisRepo stores session keys as redis strings.
// Key format: session:<browser_id>:<key>
type RedisRepo struct {
	client *redis.Client
	ttl    time.Duration
}

// ConnectRedis creates the client and validates connectivity with a ping.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*RedisRepo, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRedisTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisRepo(client, cfg.TTL), nil
}

// NewRedisRepo wraps an existing client
func NewRedisRepo(client *redis.Client, ttl time.Duration) *RedisRepo {
	return &RedisRepo{client: client, ttl: ttl}
}

func (r *RedisRepo) Get(ctx context.Context, browserID, key string) (string, error) {
	v, err := r.client.Get(ctx, r.key(browserID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperrors.ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w", err)
	}
	return v, nil
}

func (r *RedisRepo) Set(ctx context.Context, browserID, key, value string) error {
	return r.client.Set(ctx, r.key(browserID, key), value, r.ttl).Err()
}

func (r *RedisRepo) Delete(ctx context.Context, browserID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, r.key(browserID, k))
	}
	return r.client.Del(ctx, full...).Err()
}

func (r *RedisRepo) Close() error {
	return r.client.Close()
}

func (r *RedisRepo) key(browserID, key string) string {
	return fmt.Sprintf("session:%s:%s", browserID, key)
}
