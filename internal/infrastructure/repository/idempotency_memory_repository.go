package repository

import (
	"context"
	"sync"
	"time"

	"employee-records/internal/domain/idempotency"
)

var _ idempotency.Repository = (*MemoryIdempotencyRepository)(nil)

// MemoryIdempotencyRepository keeps keys in process memory. Expired keys are
// dropped lazily on lookup.
type MemoryIdempotencyRepository struct {
	keys  map[string]idempotency.Key
	now   func() time.Time
	mutex sync.Mutex
}

func NewMemoryIdempotencyRepository() *MemoryIdempotencyRepository {
	return &MemoryIdempotencyRepository{
		keys: make(map[string]idempotency.Key),
		now:  time.Now,
	}
}

func (r *MemoryIdempotencyRepository) SetWithTTL(_ context.Context, key *idempotency.Key, ttl time.Duration) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	stored := *key
	if ttl > 0 {
		stored.ExpiresAt = r.now().Add(ttl)
	}
	r.keys[key.Key] = stored
	return nil
}

func (r *MemoryIdempotencyRepository) Reserve(_ context.Context, key *idempotency.Key, ttl time.Duration) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := r.now()
	if existing, ok := r.keys[key.Key]; ok && !existing.IsExpired(now) {
		return false, nil
	}

	stored := *key
	if ttl > 0 {
		stored.ExpiresAt = now.Add(ttl)
	}
	r.keys[key.Key] = stored
	return true, nil
}

func (r *MemoryIdempotencyRepository) GetByKey(_ context.Context, key string) (*idempotency.Key, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	stored, ok := r.keys[key]
	if !ok {
		return nil, idempotency.ErrKeyNotFound
	}
	if stored.IsExpired(r.now()) {
		delete(r.keys, key)
		return nil, idempotency.ErrKeyNotFound
	}

	return &stored, nil
}

func (r *MemoryIdempotencyRepository) Delete(_ context.Context, key string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.keys, key)
	return nil
}
