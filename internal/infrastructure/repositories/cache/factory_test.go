package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_CreateCache(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
		backend string
	}{
		{
			name:    "memory cache",
			config:  Config{Type: CacheTypeMemory, DefaultTTL: time.Minute},
			backend: "memory",
		},
		{
			name:    "empty type defaults to memory",
			config:  Config{},
			backend: "memory",
		},
		{
			name:    "unsupported type",
			config:  Config{Type: "memcached"},
			wantErr: ErrUnsupportedBackend,
		},
		{
			name: "unreachable redis",
			config: Config{
				Type:         CacheTypeRedis,
				RedisAddr:    "127.0.0.1:1",
				PingAttempts: 1,
				PingTimeout:  100 * time.Millisecond,
			},
			wantErr: ErrBackendUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewFactory().CreateCache(context.Background(), tt.config)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			instrumented, ok := got.(*InstrumentedCache)
			require.True(t, ok)
			assert.Equal(t, tt.backend, instrumented.backend)
		})
	}
}

func TestInstrumentedCache_DelegatesToBackend(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryCache()
	cache := NewInstrumentedCache(inner, "memory")

	require.NoError(t, cache.Set(ctx, "k", "v", time.Minute))

	val, found, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", val)

	_, found, err = cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	size, err := cache.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, size)

	require.NoError(t, cache.Clear(ctx))
	size, _ = inner.Size(ctx)
	assert.Equal(t, 0, size)
	assert.Same(t, inner, cache.Unwrap())
}
