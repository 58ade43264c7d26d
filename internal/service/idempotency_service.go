package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"employee-records/internal/domain/idempotency"
	"employee-records/pkg/logger"
)

const (
	DefaultIdempotencyTTL = 24 * time.Hour

	// pendingTTL bounds how long a reservation blocks retries when its request never finishes
	pendingTTL = time.Minute

	reserveAttempts = 2
)

type IdempotencyService struct {
	idempotencyRepo idempotency.Repository
	ttl             time.Duration
	now             func() time.Time
}

// NewIdempotencyService stores processed keys for ttl, or DefaultIdempotencyTTL when ttl is not positive
func NewIdempotencyService(idempotencyRepo idempotency.Repository, ttl time.Duration) *IdempotencyService {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyService{
		idempotencyRepo: idempotencyRepo,
		ttl:             ttl,
		now:             time.Now,
	}
}

// CheckDuplicateRequest reserves key for the caller, or returns the stored key
// and true when key was already processed with the same request data. Reusing
// a key with different data yields idempotency.ErrKeyReused and a key whose
// first request is still running yields idempotency.ErrRequestInProgress.
// A caller that won the reservation must finish with StoreProcessedRequest or
// ReleaseRequest.
func (s *IdempotencyService) CheckDuplicateRequest(ctx context.Context, key string, requestData any) (*idempotency.Key, bool, error) {
	if key == "" {
		return nil, false, nil
	}

	requestHash := s.generateRequestHash(requestData)
	for attempt := 0; attempt < reserveAttempts; attempt++ {
		now := s.now()
		reserved, err := s.idempotencyRepo.Reserve(ctx, &idempotency.Key{
			Key:         key,
			RequestHash: requestHash,
			ProcessedAt: now,
			ExpiresAt:   now.Add(pendingTTL),
		}, pendingTTL)
		if err != nil {
			logger.Error("Failed to reserve idempotency key %s: %v", key, err)
			return nil, false, fmt.Errorf("failed to reserve idempotency key: %w", err)
		}
		if reserved {
			return nil, false, nil
		}

		existingKey, err := s.idempotencyRepo.GetByKey(ctx, key)
		if err != nil {
			if errors.Is(err, idempotency.ErrKeyNotFound) {
				// released or expired between the two calls
				continue
			}
			logger.Error("Failed to check idempotency key: %v", err)
			return nil, false, fmt.Errorf("failed to check idempotency key: %w", err)
		}

		if existingKey.IsExpired(s.now()) {
			if err := s.idempotencyRepo.Delete(ctx, key); err != nil {
				logger.Warn("Failed to delete expired idempotency key %s: %v", key, err)
			}
			continue
		}

		if existingKey.RequestHash != requestHash {
			logger.Warn("Idempotency key %s used with different request data", key)
			return nil, false, idempotency.ErrKeyReused
		}

		if existingKey.IsPending() {
			logger.Warn("Idempotency key %s is still being processed", key)
			return nil, false, idempotency.ErrRequestInProgress
		}

		logger.Info("Duplicate request detected for idempotency key: %s", key)
		return existingKey, true, nil
	}

	return nil, false, idempotency.ErrRequestInProgress
}

// ReleaseRequest drops a reservation whose request failed so the key can be retried
func (s *IdempotencyService) ReleaseRequest(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	if err := s.idempotencyRepo.Delete(ctx, key); err != nil {
		logger.Error("Failed to release idempotency key %s: %v", key, err)
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}

func (s *IdempotencyService) StoreProcessedRequest(ctx context.Context, key string, requestData any, responseData any, statusCode int) error {
	if key == "" {
		return nil
	}

	responseJSON, err := json.Marshal(responseData)
	if err != nil {
		logger.Error("Failed to marshal response data for idempotency key %s: %v", key, err)
		return fmt.Errorf("failed to marshal response data: %w", err)
	}

	now := s.now()
	idempotencyKey := &idempotency.Key{
		Key:          key,
		RequestHash:  s.generateRequestHash(requestData),
		ResponseData: string(responseJSON),
		StatusCode:   statusCode,
		ProcessedAt:  now,
		ExpiresAt:    now.Add(s.ttl),
	}

	if err := s.idempotencyRepo.SetWithTTL(ctx, idempotencyKey, s.ttl); err != nil {
		logger.Error("Failed to store idempotency key %s: %v", key, err)
		return fmt.Errorf("failed to store idempotency key: %w", err)
	}

	logger.Info("Stored idempotency key: %s", key)
	return nil
}

func (s *IdempotencyService) generateRequestHash(requestData any) string {
	jsonData, _ := json.Marshal(requestData)
	hash := sha256.Sum256(jsonData)
	return hex.EncodeToString(hash[:])
}
