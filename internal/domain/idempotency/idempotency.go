package idempotency

import (
	"context"
	"errors"
	"time"
)

var (
	ErrKeyNotFound = errors.New("idempotency key not found")
	ErrKeyReused   = errors.New("idempotency key already used with different request data")

	// ErrRequestInProgress means another request holds the key and has not finished yet
	ErrRequestInProgress = errors.New("request with this idempotency key is still being processed")
)

// Key records the outcome of a request processed under an Idempotency-Key header
type Key struct {
	Key          string    `json:"key"`
	RequestHash  string    `json:"request_hash"`
	ResponseData string    `json:"response_data"`
	StatusCode   int       `json:"status_code"`
	ProcessedAt  time.Time `json:"processed_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// IsExpired reports whether the key is past its expiry at now
func (k *Key) IsExpired(now time.Time) bool {
	return !k.ExpiresAt.IsZero() && now.After(k.ExpiresAt)
}

// IsPending reports whether the key is reserved but its request has no stored response yet
func (k *Key) IsPending() bool {
	return k.StatusCode == 0
}

// Repository stores processed keys. GetByKey returns ErrKeyNotFound for unknown keys.
// Reserve stores key only when no live entry exists and reports whether it did.
type Repository interface {
	Reserve(ctx context.Context, key *Key, ttl time.Duration) (bool, error)
	SetWithTTL(ctx context.Context, key *Key, ttl time.Duration) error
	GetByKey(ctx context.Context, key string) (*Key, error)
	Delete(ctx context.Context, key string) error
}
