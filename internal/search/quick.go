package search

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/mekedron/tabelog-cli/internal/domain"
)

// Cache memoizes completed quick-query responses keyed by their normalized
// query. Callers construct one and hand it to Quick; nothing here is global,
// so separate caches never share entries.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]domain.Response
	group   singleflight.Group
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]domain.Response)}
}

func (c *Cache) lookup(key string) (domain.Response, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	response, ok := c.entries[key]
	return response, ok
}

func (c *Cache) store(key string, response domain.Response) {
	c.mu.Lock()
	c.entries[key] = response
	c.mu.Unlock()
}

// Len reports how many responses the cache holds.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Quick runs a single-page search through the cache. The query is normalized
// before the key is formed, so queries differing only in whitespace or
// defaulted fields hit the same entry. Concurrent callers with the same key
// share one upstream fetch. Error responses are never memoized.
func (o *Orchestrator) Quick(ctx context.Context, cache *Cache, query domain.Query) domain.Response {
	normalized, err := domain.NewQuery(query)
	if err != nil {
		return errorResponse(err)
	}
	key := cacheKey(normalized)

	if response, ok := cache.lookup(key); ok {
		return response
	}

	value, _, _ := cache.group.Do(key, func() (any, error) {
		if response, ok := cache.lookup(key); ok {
			return response, nil
		}
		response := o.Do(ctx, Request{Query: normalized, MaxPages: 1, IncludeMeta: true})
		if response.Status != domain.StatusError {
			cache.store(key, response)
		}
		return response, nil
	})
	return value.(domain.Response)
}

// cacheKey renders the normalized query as a stable string. Struct fields
// marshal in declaration order, so equal queries always produce equal keys.
func cacheKey(query domain.Query) string {
	raw, err := json.Marshal(query)
	if err != nil {
		return fmt.Sprintf("%+v", query)
	}
	return string(raw)
}
