package config

import (
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Source      SourceConfig      `yaml:"source" mapstructure:"source"`
	Basket      BasketConfig      `yaml:"basket" mapstructure:"basket"`
	Estimator   EstimatorConfig   `yaml:"estimator" mapstructure:"estimator"`
	History     HistoryConfig     `yaml:"history" mapstructure:"history"`
	Snapshot    SnapshotConfig    `yaml:"snapshot" mapstructure:"snapshot"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit" mapstructure:"rate_limit"`
	Auth        AuthConfig        `yaml:"auth" mapstructure:"auth"`
	Logging     LoggingConfig     `yaml:"logging" mapstructure:"logging"`
	Development DevelopmentConfig `yaml:"development" mapstructure:"development"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" mapstructure:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// CacheConfig contains cache system configuration. TTL aplica a los quotes del sitio.
type CacheConfig struct {
	Backend   string        `yaml:"backend" mapstructure:"backend"`
	TTL       time.Duration `yaml:"ttl" mapstructure:"ttl"`
	KeyPrefix string        `yaml:"key_prefix" mapstructure:"key_prefix"`
	Redis     RedisConfig   `yaml:"redis" mapstructure:"redis"`
}

// RedisConfig contains Redis-specific configuration
type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

// SourceConfig es el sitio comparador de precios
type SourceConfig struct {
	BaseURL           string        `yaml:"base_url" mapstructure:"base_url"`
	SlugSuffix        string        `yaml:"slug_suffix" mapstructure:"slug_suffix"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// BasketConfig controla cómo se consultan los items de una canasta
type BasketConfig struct {
	BatchSize  int           `yaml:"batch_size" mapstructure:"batch_size"`
	BatchDelay time.Duration `yaml:"batch_delay" mapstructure:"batch_delay"`
}

// EstimatorConfig es el rango de variación por cadena de las estimaciones
type EstimatorConfig struct {
	JitterMin float64 `yaml:"jitter_min" mapstructure:"jitter_min"`
	JitterMax float64 `yaml:"jitter_max" mapstructure:"jitter_max"`
}

type HistoryConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DSN         string `yaml:"dsn" mapstructure:"dsn"`
	DefaultDays int    `yaml:"default_days" mapstructure:"default_days"`
}

// SnapshotConfig programa la captura periódica de la watchlist
type SnapshotConfig struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Spec       string        `yaml:"spec" mapstructure:"spec"`
	Watchlist  []string      `yaml:"watchlist" mapstructure:"watchlist"`
	RunTimeout time.Duration `yaml:"run_timeout" mapstructure:"run_timeout"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled    bool `yaml:"enabled" mapstructure:"enabled"`
	Capacity   int  `yaml:"capacity" mapstructure:"capacity"`
	RefillRate int  `yaml:"refill_rate" mapstructure:"refill_rate"`
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	Enabled     bool     `yaml:"enabled" mapstructure:"enabled"`
	APIKey      string   `yaml:"api_key" mapstructure:"api_key"`
	HeaderName  string   `yaml:"header_name" mapstructure:"header_name"`
	UnauthPaths []string `yaml:"unauth_paths" mapstructure:"unauth_paths"`
}

// LoggingConfig contains logging system configuration
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	// Output: stdout | stderr
	Output string `yaml:"output" mapstructure:"output"`
}

// DevelopmentConfig contiene configuraciones para desarrollo y testing.
// OfflineMode desactiva el sitio y sirve sólo estimaciones.
type DevelopmentConfig struct {
	OfflineMode bool `yaml:"offline_mode" mapstructure:"offline_mode"`
	DebugMode   bool `yaml:"debug_mode" mapstructure:"debug_mode"`
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			Backend:   "memory",
			TTL:       15 * time.Minute,
			KeyPrefix: "grocery:",
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		Source: SourceConfig{
			BaseURL:           "https://www.comparasuper.cl/producto",
			SlugSuffix:        "-1-kg",
			Timeout:           10 * time.Second,
			UserAgent:         "grocery-price-service/1.0",
			RequestsPerSecond: 2,
			Burst:             2,
			MaxBodyBytes:      2 << 20,
		},
		Basket: BasketConfig{
			BatchSize:  3,
			BatchDelay: 500 * time.Millisecond,
		},
		Estimator: EstimatorConfig{
			JitterMin: 0.90,
			JitterMax: 1.15,
		},
		History: HistoryConfig{
			Driver:      "memory",
			DSN:         "file:price_history.db?_journal_mode=WAL&_timeout=5000",
			DefaultDays: 30,
		},
		Snapshot: SnapshotConfig{
			Enabled:    false,
			Spec:       "0 */6 * * *",
			Watchlist:  []string{"arroz", "leche", "pan", "huevos", "aceite", "azucar"},
			RunTimeout: 2 * time.Minute,
		},
		RateLimit: RateLimitConfig{
			Enabled:    true,
			Capacity:   60,
			RefillRate: 10,
		},
		Auth: AuthConfig{
			Enabled:     false,
			HeaderName:  "X-API-Key",
			UnauthPaths: []string{"/health", "/ready", "/metrics", "/swagger/"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}
