// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// MetricsCache defines a read-through cache for aggregated metrics payloads.
// Entries expire by TTL; a miss is reported with a nil payload and nil error.
type MetricsCache interface {
	// Get returns the cached payload for the key, or nil on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a payload under the key for the given TTL.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}
