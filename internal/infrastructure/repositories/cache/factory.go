package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/redis/go-redis/v9"

	"grocery-price-service/internal/domain/interfaces"
	"grocery-price-service/internal/infrastructure/logging"
)

// CacheType es el backend a crear
type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// Config holds cache configuration options
type Config struct {
	Type         CacheType
	DefaultTTL   time.Duration
	RedisAddr    string
	RedisDB      int
	Password     string
	KeyPrefix    string
	PingAttempts uint
	PingTimeout  time.Duration
}

// Factory crea backends de cache ya instrumentados
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// CreateCache retorna el backend pedido envuelto en InstrumentedCache
func (f *Factory) CreateCache(ctx context.Context, config Config) (interfaces.Cache, error) {
	switch config.Type {
	case CacheTypeMemory, "":
		logging.Info(ctx, "Creating memory cache", logging.Fields{
			"type":        "memory",
			"default_ttl": config.DefaultTTL.String(),
		})
		return NewInstrumentedCache(NewMemoryCacheWithTTL(config.DefaultTTL), string(CacheTypeMemory)), nil

	case CacheTypeRedis:
		logging.Info(ctx, "Creating Redis cache", logging.Fields{
			"type":     "redis",
			"addr":     config.RedisAddr,
			"database": config.RedisDB,
		})
		backend, err := f.createRedisCache(ctx, config)
		if err != nil {
			return nil, err
		}
		return NewInstrumentedCache(backend, string(CacheTypeRedis)), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, config.Type)
	}
}

// createRedisCache hace ping con backoff antes de entregar el cliente
func (f *Factory) createRedisCache(ctx context.Context, config Config) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.Password,
		DB:       config.RedisDB,
	})

	attempts := config.PingAttempts
	if attempts == 0 {
		attempts = 3
	}
	timeout := config.PingTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	err := retry.Do(
		func() error {
			pingCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return rdb.Ping(pingCtx).Err()
		},
		retry.Attempts(attempts),
		retry.Delay(200*time.Millisecond),
		retry.MaxDelay(2*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logging.Warn(ctx, "Redis ping failed, retrying", logging.Fields{
				"addr":    config.RedisAddr,
				"attempt": n + 1,
				"error":   err.Error(),
			})
		}),
	)
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%w: redis at %s: %w", ErrBackendUnavailable, config.RedisAddr, err)
	}

	prefix := config.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}

	logging.Info(ctx, "Redis connection established", logging.Fields{
		"addr":     config.RedisAddr,
		"database": config.RedisDB,
	})
	return NewRedisCacheWithClient(rdb, prefix, config.DefaultTTL), nil
}
