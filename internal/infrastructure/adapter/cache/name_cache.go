package cache

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultNameCacheSize is used when no size is configured
const DefaultNameCacheSize = 4096

// NameCache maps chat display names to user ids
// Names are matched case-insensitively and without a leading @
type NameCache struct {
	cache *lru.Cache[string, string]
}

// NewNameCache creates a bounded name cache
func NewNameCache(size int) (*NameCache, error) {
	if size <= 0 {
		size = DefaultNameCacheSize
	}

	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("create name cache: %w", err)
	}

	return &NameCache{cache: cache}, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "@"))
}

// Remember records that name belongs to userID
func (c *NameCache) Remember(name, userID string) {
	name = normalizeName(name)
	userID = strings.TrimSpace(userID)
	if name == "" || userID == "" {
		return
	}
	c.cache.Add(name, userID)
}

// Resolve returns the user id last seen for name
func (c *NameCache) Resolve(name string) (string, bool) {
	name = normalizeName(name)
	if name == "" {
		return "", false
	}
	return c.cache.Get(name)
}

// Len returns the number of cached names
func (c *NameCache) Len() int {
	return c.cache.Len()
}
