// Package cache is a small byte cache used for computed reports and replayed
// bill-creation responses.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Store is a key/value cache with expiry. A miss is (nil, false, nil).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetNX stores value only when key is absent and reports whether it did.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
	// Incr bumps an integer counter, creating it at 1. Counters do not expire.
	Incr(ctx context.Context, key string) (int64, error)
	// Counter reads an integer counter, 0 when it was never bumped.
	Counter(ctx context.Context, key string) (int64, error)
}

// GetJSON decodes a cached JSON value into dst.
func GetJSON(ctx context.Context, s Store, key string, dst any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON encodes value as JSON and caches it.
func SetJSON(ctx context.Context, s Store, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, payload, ttl)
}
