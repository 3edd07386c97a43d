package persistence

import (
	"context"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
)

// DedupStore remembers which reaction events were already processed
type DedupStore interface {
	// MarkIfAbsent atomically records the key and reports whether it was newly added
	// A false result means another delivery of the same reaction got there first
	MarkIfAbsent(ctx context.Context, key entity.DedupKey) (bool, error)

	// Seed records keys without reporting duplicates, used to rebuild state after a restart
	Seed(ctx context.Context, keys []entity.DedupKey) error

	// Len returns the number of keys currently remembered
	Len() int

	// Close releases resources held by the store
	Close() error
}
