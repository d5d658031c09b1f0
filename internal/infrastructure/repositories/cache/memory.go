package cache

import (
	"context"
	"sync"
	"time"

	"grocery-price-service/internal/domain/interfaces"
)

// DefaultTTL se usa cuando Set recibe ttl <= 0
const DefaultTTL = 15 * time.Minute

// cacheEntry guarda el valor junto con cuándo se escribió y su TTL
type cacheEntry struct {
	value    string
	storedAt time.Time
	ttl      time.Duration
}

func (e *cacheEntry) expired(now time.Time) bool {
	return now.Sub(e.storedAt) > e.ttl
}

// MemoryCache es un cache local con expiración perezosa: una entrada vencida
// se borra en el Get que la observa, no hay goroutine de limpieza.
type MemoryCache struct {
	items      map[string]*cacheEntry
	mu         sync.RWMutex
	defaultTTL time.Duration
	now        func() time.Time
}

// NewMemoryCache crea un cache en memoria con DefaultTTL
func NewMemoryCache() interfaces.Cache {
	return NewMemoryCacheWithTTL(DefaultTTL)
}

func NewMemoryCacheWithTTL(defaultTTL time.Duration) *MemoryCache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &MemoryCache{
		items:      make(map[string]*cacheEntry),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Get retorna el valor si existe y no venció. Una entrada vencida se elimina acá.
func (c *MemoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	now := c.now()

	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return "", false, nil
	}
	if !entry.expired(now) {
		return entry.value, true, nil
	}

	c.mu.Lock()
	// otro Set pudo reemplazar la entrada entre los dos locks
	if current, still := c.items[key]; still && current == entry {
		delete(c.items, key)
	}
	c.mu.Unlock()

	return "", false, nil
}

// Set guarda value; last write wins
func (c *MemoryCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	entry := &cacheEntry{value: value, storedAt: c.now(), ttl: ttl}

	c.mu.Lock()
	c.items[key] = entry
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.items = make(map[string]*cacheEntry)
	c.mu.Unlock()
	return nil
}

// Size cuenta también las entradas vencidas que nadie leyó todavía
func (c *MemoryCache) Size(ctx context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items), nil
}
