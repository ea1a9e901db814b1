package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyTTL = 24 * time.Hour
	// reservationTTL bounds how long a key stays claimed by a create that
	// never finished.
	reservationTTL = time.Minute
	// inFlight marks a claimed key whose request id is not known yet.
	inFlight = "-"
)

// IdempotencyStore remembers which donation request an Idempotency-Key
// produced, per caller.
// Key format: idem:donation-request:<caller_email>:<key>
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Reserve atomically claims key for the caller with SET NX. When the key is
// already held, reserved is false and id is the stored request id, or empty
// while the first create is still in flight.
func (s *IdempotencyStore) Reserve(ctx context.Context, scope, key string) (string, bool, error) {
	k := s.key(scope, key)
	ok, err := s.client.SetNX(ctx, k, inFlight, reservationTTL).Result()
	if err != nil {
		return "", false, fmt.Errorf("idempotency reserve: %w", err)
	}
	if ok {
		return "", true, nil
	}

	id, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) || id == inFlight {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, false, nil
}

// Remember stores the request id for a key reserved by the caller (expires
// after idempotencyTTL).
func (s *IdempotencyStore) Remember(ctx context.Context, scope, key, id string) error {
	if err := s.client.Set(ctx, s.key(scope, key), id, idempotencyTTL).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

// Release drops a reservation whose create failed so the client can retry.
func (s *IdempotencyStore) Release(ctx context.Context, scope, key string) error {
	if err := s.client.Del(ctx, s.key(scope, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(scope, key string) string {
	return fmt.Sprintf("idem:donation-request:%s:%s", scope, key)
}
