package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key does not exist or has expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the key-value storage port backing session-scoped report
// persistence. Implementations must treat an absent key as ErrCacheMiss so
// callers can tell expiry from infrastructure failure.
type Cache interface {
	// Get retrieves a value by key, or ErrCacheMiss when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under key with the given TTL. TTL of 0 means no
	// expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Ping checks if the storage service is reachable.
	Ping(ctx context.Context) error

	// Close closes the underlying connection.
	Close() error
}
