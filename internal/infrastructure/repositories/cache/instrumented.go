package cache

import (
	"context"
	"time"

	"grocery-price-service/internal/domain/interfaces"
	"grocery-price-service/internal/infrastructure/logging"
	"grocery-price-service/internal/infrastructure/metrics"
)

// InstrumentedCache envuelve cualquier backend con métricas y logs de cache
type InstrumentedCache struct {
	cache   interfaces.Cache
	backend string
}

func NewInstrumentedCache(cache interfaces.Cache, backend string) *InstrumentedCache {
	return &InstrumentedCache{cache: cache, backend: backend}
}

func (ic *InstrumentedCache) record(operation, result string, start time.Time) {
	metrics.RecordCacheOperation(ic.backend, operation, result, time.Since(start).Seconds())
}

func (ic *InstrumentedCache) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	val, found, err := ic.cache.Get(ctx, key)
	switch {
	case err != nil:
		ic.record("get", "error", start)
		logging.Cache().CacheError(ctx, logging.CacheOpGet, key, err)
	case found:
		ic.record("get", "hit", start)
		logging.Cache().Hit(ctx, key, logging.CacheOpGet)
	default:
		ic.record("get", "miss", start)
		logging.Cache().Miss(ctx, key, logging.CacheOpGet)
	}
	return val, found, err
}

func (ic *InstrumentedCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	start := time.Now()
	err := ic.cache.Set(ctx, key, value, ttl)
	if err != nil {
		ic.record("set", "error", start)
		logging.Cache().CacheError(ctx, logging.CacheOpSet, key, err)
		return err
	}
	ic.record("set", "success", start)
	logging.Cache().Set(ctx, key, ttl.Seconds())
	return nil
}

func (ic *InstrumentedCache) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := ic.cache.Delete(ctx, key)
	if err != nil {
		ic.record("delete", "error", start)
		return err
	}
	ic.record("delete", "success", start)
	logging.Cache().Delete(ctx, key)
	return nil
}

func (ic *InstrumentedCache) Clear(ctx context.Context) error {
	start := time.Now()
	if err := ic.cache.Clear(ctx); err != nil {
		ic.record("clear", "error", start)
		logging.Cache().CacheError(ctx, logging.CacheOpClear, "*", err)
		return err
	}
	ic.record("clear", "success", start)
	metrics.UpdateCacheKeys(ic.backend, 0)
	return nil
}

func (ic *InstrumentedCache) Size(ctx context.Context) (int, error) {
	n, err := ic.cache.Size(ctx)
	if err == nil {
		metrics.UpdateCacheKeys(ic.backend, n)
	}
	return n, err
}

// Unwrap retorna el backend sin instrumentar
func (ic *InstrumentedCache) Unwrap() interfaces.Cache {
	return ic.cache
}
