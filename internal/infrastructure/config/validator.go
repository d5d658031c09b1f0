package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Validator valida la configuración cargada
type Validator struct{}

// NewValidator crea una nueva instancia del validador
func NewValidator() *Validator {
	return &Validator{}
}

// Validate valida toda la configuración
func (v *Validator) Validate(config *Config) error {
	if err := v.validateServer(config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := v.validateCache(config.Cache); err != nil {
		return fmt.Errorf("cache config validation failed: %w", err)
	}

	if err := v.validateSource(config.Source, config.Development.OfflineMode); err != nil {
		return fmt.Errorf("source config validation failed: %w", err)
	}

	if err := v.validateBasket(config.Basket); err != nil {
		return fmt.Errorf("basket config validation failed: %w", err)
	}

	if err := v.validateEstimator(config.Estimator); err != nil {
		return fmt.Errorf("estimator config validation failed: %w", err)
	}

	if err := v.validateHistory(config.History); err != nil {
		return fmt.Errorf("history config validation failed: %w", err)
	}

	if err := v.validateSnapshot(config.Snapshot); err != nil {
		return fmt.Errorf("snapshot config validation failed: %w", err)
	}

	if err := v.validateRateLimit(config.RateLimit); err != nil {
		return fmt.Errorf("rate limit config validation failed: %w", err)
	}

	if err := v.validateAuth(config.Auth); err != nil {
		return fmt.Errorf("auth config validation failed: %w", err)
	}

	if err := v.validateLogging(config.Logging); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	return nil
}

// validateServer valida la configuración del servidor
func (v *Validator) validateServer(config ServerConfig) error {
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("invalid port: %d, must be between 1-65535", config.Port)
	}

	if config.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got: %v", config.ShutdownTimeout)
	}

	if config.ShutdownTimeout > 5*time.Minute {
		return fmt.Errorf("shutdown_timeout too long: %v, max 5 minutes", config.ShutdownTimeout)
	}

	if config.ReadTimeout < 0 || config.WriteTimeout < 0 {
		return fmt.Errorf("read/write timeouts must not be negative")
	}

	return nil
}

// validateCache valida la configuración del cache
func (v *Validator) validateCache(config CacheConfig) error {
	validBackends := []string{"memory", "redis"}
	if !contains(validBackends, config.Backend) {
		return fmt.Errorf("invalid cache backend: %s, must be one of: %v", config.Backend, validBackends)
	}

	if err := v.validateTTL(config.TTL); err != nil {
		return err
	}

	if strings.EqualFold(config.Backend, "redis") {
		if err := v.validateRedis(config.Redis); err != nil {
			return err
		}
	}

	return nil
}

// validateTTL: un quote vive entre 1 minuto y 24 horas
func (v *Validator) validateTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %v", ttl)
	}

	if ttl < time.Minute {
		return fmt.Errorf("cache TTL too short: %v, min 1 minute", ttl)
	}

	if ttl > 24*time.Hour {
		return fmt.Errorf("cache TTL too long: %v, max 24 hours", ttl)
	}

	return nil
}

// validateRedis valida la configuración de Redis
func (v *Validator) validateRedis(config RedisConfig) error {
	if config.Addr == "" {
		return fmt.Errorf("redis addr cannot be empty")
	}

	if !strings.Contains(config.Addr, ":") {
		return fmt.Errorf("invalid redis addr format: %s, expected host:port", config.Addr)
	}

	if config.DB < 0 || config.DB > 15 {
		return fmt.Errorf("invalid redis DB: %d, must be between 0-15", config.DB)
	}

	return nil
}

// validateSource valida el sitio comparador; en modo offline no se usa
func (v *Validator) validateSource(config SourceConfig, offline bool) error {
	if offline {
		return nil
	}

	if err := v.validateURL(config.BaseURL, "source base_url"); err != nil {
		return err
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("source timeout must be positive, got: %v", config.Timeout)
	}

	if config.Timeout > time.Minute {
		return fmt.Errorf("source timeout too long: %v, max 1 minute", config.Timeout)
	}

	if config.RequestsPerSecond < 0 {
		return fmt.Errorf("source requests_per_second must not be negative, got: %v", config.RequestsPerSecond)
	}

	if config.Burst < 0 {
		return fmt.Errorf("source burst must not be negative, got: %d", config.Burst)
	}

	if config.MaxBodyBytes < 0 {
		return fmt.Errorf("source max_body_bytes must not be negative, got: %d", config.MaxBodyBytes)
	}

	return nil
}

func (v *Validator) validateBasket(config BasketConfig) error {
	if config.BatchSize < 1 || config.BatchSize > 20 {
		return fmt.Errorf("basket batch_size must be between 1-20, got: %d", config.BatchSize)
	}

	if config.BatchDelay < 0 {
		return fmt.Errorf("basket batch_delay must not be negative, got: %v", config.BatchDelay)
	}

	return nil
}

func (v *Validator) validateEstimator(config EstimatorConfig) error {
	if config.JitterMin <= 0 {
		return fmt.Errorf("estimator jitter_min must be positive, got: %v", config.JitterMin)
	}

	if config.JitterMax < config.JitterMin {
		return fmt.Errorf("estimator jitter_max (%v) must be >= jitter_min (%v)", config.JitterMax, config.JitterMin)
	}

	return nil
}

func (v *Validator) validateHistory(config HistoryConfig) error {
	validDrivers := []string{"memory", "sqlite3", "sqlite"}
	if !contains(validDrivers, config.Driver) {
		return fmt.Errorf("invalid history driver: %s, must be one of: %v", config.Driver, validDrivers)
	}

	if !strings.EqualFold(config.Driver, "memory") && config.DSN == "" {
		return fmt.Errorf("history dsn cannot be empty for driver %s", config.Driver)
	}

	if config.DefaultDays < 1 || config.DefaultDays > 365 {
		return fmt.Errorf("history default_days must be between 1-365, got: %d", config.DefaultDays)
	}

	return nil
}

func (v *Validator) validateSnapshot(config SnapshotConfig) error {
	if !config.Enabled {
		return nil
	}

	if _, err := cron.ParseStandard(config.Spec); err != nil {
		return fmt.Errorf("invalid snapshot spec %q: %v", config.Spec, err)
	}

	if len(config.Watchlist) == 0 {
		return fmt.Errorf("snapshot watchlist cannot be empty when enabled")
	}

	return nil
}

// validateRateLimit valida la configuración de rate limiting
func (v *Validator) validateRateLimit(config RateLimitConfig) error {
	if config.Enabled {
		if config.Capacity <= 0 {
			return fmt.Errorf("rate_limit capacity must be positive when enabled, got: %d", config.Capacity)
		}

		if config.RefillRate <= 0 {
			return fmt.Errorf("rate_limit refill_rate must be positive when enabled, got: %d", config.RefillRate)
		}

		if config.Capacity > 10000 {
			return fmt.Errorf("rate_limit capacity too high: %d, max 10000", config.Capacity)
		}

		if config.RefillRate > 1000 {
			return fmt.Errorf("rate_limit refill_rate too high: %d, max 1000", config.RefillRate)
		}
	}

	return nil
}

func (v *Validator) validateAuth(config AuthConfig) error {
	if config.Enabled && config.APIKey == "" {
		return fmt.Errorf("auth api_key cannot be empty when auth is enabled")
	}
	return nil
}

// validateLogging valida la configuración de logging
func (v *Validator) validateLogging(config LoggingConfig) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, strings.ToLower(config.Level)) {
		return fmt.Errorf("invalid log level: %s, must be one of: %v", config.Level, validLevels)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, strings.ToLower(config.Format)) {
		return fmt.Errorf("invalid log format: %s, must be one of: %v", config.Format, validFormats)
	}

	if config.Output != "" && !contains([]string{"stdout", "stderr"}, strings.ToLower(config.Output)) {
		return fmt.Errorf("invalid log output: %s, must be stdout or stderr", config.Output)
	}

	return nil
}

// validateURL valida que una URL sea válida para HTTP/HTTPS
func (v *Validator) validateURL(rawURL, fieldName string) error {
	if rawURL == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid %s: %s, error: %v", fieldName, rawURL, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("invalid %s scheme: %s, must be http or https", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s must have a host", fieldName)
	}

	return nil
}

// contains verifica si un slice contiene un elemento
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
