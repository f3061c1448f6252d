// Package persist stores the favorites and watchlist collections in a durable
// key-value backend and recovers from corrupted values.
package persist

import (
	"context"
	"fmt"
)

// Backend is a durable key-value store. Get reports ok=false for a missing key.
type Backend interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Driver names accepted by Open.
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverMemory = "memory"
)

// Open returns the backend for driver rooted at path.
func Open(driver, path string) (Backend, error) {
	switch driver {
	case DriverSQLite, "":
		return OpenSQLite(path)
	case DriverBolt:
		return OpenBolt(path)
	case DriverMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
