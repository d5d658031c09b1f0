package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"grocery-price-service/internal/domain/interfaces"
)

// TypedCache guarda valores T serializados como JSON bajo un namespace
// ("quote:<slug>") con un TTL fijo.
type TypedCache[T any] struct {
	backend   interfaces.Cache
	namespace string
	ttl       time.Duration
}

func NewTypedCache[T any](backend interfaces.Cache, namespace string, ttl time.Duration) *TypedCache[T] {
	return &TypedCache[T]{backend: backend, namespace: namespace, ttl: ttl}
}

func (t *TypedCache[T]) key(id string) string {
	return t.namespace + ":" + id
}

func (t *TypedCache[T]) Set(ctx context.Context, id string, value *T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", t.key(id), err)
	}
	return t.backend.Set(ctx, t.key(id), string(data), t.ttl)
}

// Get trata un valor corrupto como miss y lo borra
func (t *TypedCache[T]) Get(ctx context.Context, id string) (*T, bool, error) {
	raw, found, err := t.backend.Get(ctx, t.key(id))
	if err != nil || !found {
		return nil, false, err
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		_ = t.backend.Delete(ctx, t.key(id))
		return nil, false, nil
	}
	return &value, true, nil
}

func (t *TypedCache[T]) Delete(ctx context.Context, id string) error {
	return t.backend.Delete(ctx, t.key(id))
}

// TTL retorna el TTL con el que se escriben los valores
func (t *TypedCache[T]) TTL() time.Duration {
	return t.ttl
}
