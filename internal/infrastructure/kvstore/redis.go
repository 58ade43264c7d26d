package kvstore

import (
	"context"
	"fmt"

	"employee-records/internal/config"

	"github.com/go-redis/redis/v8"
)

// RedisStore owns the Redis connection shared by the idempotency repository
// and the health checks.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string, db int) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisStore{
		client: rdb,
	}
}

func NewRedisStoreWithConfig(cfg *config.CacheConfig) *RedisStore {
	return NewRedisStore(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), cfg.Password, cfg.DB)
}

func (r *RedisStore) GetClient() redis.UniversalClient {
	return r.client
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

// Ping satisfies the health checker's pinger interface
func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}
