package dedup

import (
	"fmt"
	"time"

	coreport "github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/persistence"
)

// Supported dedup backends
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
)

// Config selects and sizes the dedup backend
type Config struct {
	Backend  string
	Capacity int
	Path     string
	TTL      time.Duration
}

// NewStore builds the configured dedup store
func NewStore(config Config, logger coreport.Logger) (persistence.DedupStore, error) {
	switch config.Backend {
	case "", BackendMemory:
		logger.Info("Using in-memory reaction dedup store", map[string]any{"capacity": config.Capacity})
		return NewLRUStore(config.Capacity)
	case BackendBadger:
		logger.Info("Using badger reaction dedup store", map[string]any{
			"path": config.Path,
			"ttl":  config.TTL.String(),
		})
		return NewBadgerStore(BadgerOptions{Path: config.Path, TTL: config.TTL}, logger)
	default:
		return nil, fmt.Errorf("unsupported dedup backend: %s", config.Backend)
	}
}
