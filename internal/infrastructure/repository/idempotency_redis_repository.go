package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"employee-records/internal/domain/idempotency"

	"github.com/go-redis/redis/v8"
)

var _ idempotency.Repository = (*RedisIdempotencyRepository)(nil)

type RedisIdempotencyRepository struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisIdempotencyRepository(client redis.UniversalClient) *RedisIdempotencyRepository {
	return &RedisIdempotencyRepository{
		client: client,
		prefix: "employee_records:idempotency_key:",
	}
}

func (r *RedisIdempotencyRepository) GetByKey(ctx context.Context, key string) (*idempotency.Key, error) {
	val, err := r.client.Get(ctx, r.getRedisKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, idempotency.ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to get idempotency key from Redis: %w", err)
	}

	var stored idempotency.Key
	if err := json.Unmarshal([]byte(val), &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal idempotency key: %w", err)
	}

	return &stored, nil
}

func (r *RedisIdempotencyRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.getRedisKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete idempotency key from Redis: %w", err)
	}

	return nil
}

func (r *RedisIdempotencyRepository) SetWithTTL(ctx context.Context, key *idempotency.Key, ttl time.Duration) error {
	data, err := json.Marshal(key)
	if err != nil {
		return fmt.Errorf("failed to marshal idempotency key: %w", err)
	}

	if err := r.client.Set(ctx, r.getRedisKey(key.Key), string(data), ttl).Err(); err != nil {
		return fmt.Errorf("failed to store idempotency key in Redis: %w", err)
	}

	return nil
}

// Reserve relies on SETNX so that only one caller wins a key across instances
func (r *RedisIdempotencyRepository) Reserve(ctx context.Context, key *idempotency.Key, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(key)
	if err != nil {
		return false, fmt.Errorf("failed to marshal idempotency key: %w", err)
	}

	reserved, err := r.client.SetNX(ctx, r.getRedisKey(key.Key), string(data), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve idempotency key in Redis: %w", err)
	}

	return reserved, nil
}

func (r *RedisIdempotencyRepository) getRedisKey(key string) string {
	return r.prefix + key
}
