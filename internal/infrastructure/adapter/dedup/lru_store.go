package dedup

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/persistence"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity bounds the in-memory store when no capacity is configured
const DefaultCapacity = 100_000

// LRUStore keeps processed reaction keys in a bounded in-process cache
// The oldest keys are evicted once capacity is reached
type LRUStore struct {
	cache *lru.Cache[string, struct{}]
}

// NewLRUStore creates an in-memory dedup store holding up to capacity keys
func NewLRUStore(capacity int) (persistence.DedupStore, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	cache, err := lru.New[string, struct{}](capacity)
	if err != nil {
		return nil, fmt.Errorf("create dedup cache: %w", err)
	}

	return &LRUStore{cache: cache}, nil
}

// MarkIfAbsent records the key and reports whether it was new
func (s *LRUStore) MarkIfAbsent(_ context.Context, key entity.DedupKey) (bool, error) {
	found, _ := s.cache.ContainsOrAdd(key.String(), struct{}{})
	return !found, nil
}

// Seed records keys as already processed
func (s *LRUStore) Seed(_ context.Context, keys []entity.DedupKey) error {
	for _, key := range keys {
		s.cache.Add(key.String(), struct{}{})
	}
	return nil
}

// Len returns the number of remembered keys
func (s *LRUStore) Len() int {
	return s.cache.Len()
}

// Close drops every remembered key
func (s *LRUStore) Close() error {
	s.cache.Purge()
	return nil
}
