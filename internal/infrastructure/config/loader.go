package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Loader handles configuration loading using Viper
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader instance
func NewLoader() *Loader {
	return &Loader{
		v: viper.New(),
	}
}

// Load loads configuration from files and environment variables
func (l *Loader) Load() (*Config, error) {
	// 1. Configure Viper
	if err := l.setupViper(); err != nil {
		return nil, fmt.Errorf("failed to setup viper: %w", err)
	}

	// 2. Read configuration
	if err := l.v.ReadInConfig(); err != nil {
		// If config.yaml doesn't exist, use only env vars and defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 3. Unmarshall a struct
	config := GetDefaultConfig()
	if err := l.v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 4. Override with specific env vars (for compatibility)
	l.overrideWithEnvVars(config)

	return config, nil
}

// setupViper configures Viper to read files and env vars
func (l *Loader) setupViper() error {
	// Configure to read YAML files
	l.v.SetConfigName("config")
	l.v.SetConfigType("yaml")

	// Search for configuration files in:
	l.v.AddConfigPath("./configs")          // Configs directory in root
	l.v.AddConfigPath("../configs")         // For when running from cmd/
	l.v.AddConfigPath(".")                  // Current directory
	l.v.AddConfigPath("/etc/grocery-price") // System (production)

	// Automatic environment variables
	l.v.AutomaticEnv()
	l.v.SetEnvPrefix("GROCERY_PRICE") // GROCERY_PRICE_SERVER_PORT
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit env vars mapping (for backward compatibility)
	l.bindEnvVars()

	return nil
}

// bindEnvVars maps specific environment variables to configuration keys
func (l *Loader) bindEnvVars() {
	envMappings := map[string]string{
		"server.port":                "PORT",
		"cache.backend":              "CACHE_BACKEND",
		"cache.ttl":                  "CACHE_TTL",
		"cache.redis.addr":           "REDIS_ADDR",
		"cache.redis.password":       "REDIS_PASSWORD",
		"cache.redis.db":             "REDIS_DB",
		"source.base_url":            "SOURCE_BASE_URL",
		"source.timeout":             "SOURCE_TIMEOUT",
		"source.requests_per_second": "SOURCE_RPS",
		"basket.batch_size":          "BASKET_BATCH_SIZE",
		"basket.batch_delay":         "BASKET_BATCH_DELAY",
		"history.driver":             "HISTORY_DRIVER",
		"history.dsn":                "HISTORY_DSN",
		"snapshot.enabled":           "SNAPSHOT_ENABLED",
		"snapshot.spec":              "SNAPSHOT_SPEC",
		"logging.level":              "LOG_LEVEL",
		"logging.format":             "LOG_FORMAT",
		"logging.output":             "LOG_OUTPUT",
		"rate_limit.capacity":        "RATE_LIMIT_CAPACITY",
		"rate_limit.refill_rate":     "RATE_LIMIT_REFILL_RATE",
		"rate_limit.enabled":         "RATE_LIMIT_ENABLED",
		"auth.enabled":               "AUTH_ENABLED",
		"auth.api_key":               "API_KEY",
	}

	for configKey, envVar := range envMappings {
		_ = l.v.BindEnv(configKey, envVar)
	}
}

// overrideWithEnvVars maneja casos especiales de env vars
func (l *Loader) overrideWithEnvVars(config *Config) {
	// SNAPSHOT_WATCHLIST como string separado por comas
	if watchlistEnv := os.Getenv("SNAPSHOT_WATCHLIST"); watchlistEnv != "" {
		var products []string
		for _, p := range strings.Split(watchlistEnv, ",") {
			if p = strings.TrimSpace(p); p != "" {
				products = append(products, p)
			}
		}
		if len(products) > 0 {
			config.Snapshot.Watchlist = products
		}
	}

	if offline := os.Getenv("OFFLINE_MODE"); offline == "true" || offline == "1" {
		config.Development.OfflineMode = true
	}
	if debugMode := os.Getenv("DEBUG_MODE"); debugMode == "true" || debugMode == "1" {
		config.Development.DebugMode = true
	}
}

// LoadForEnvironment loads specific configuration for an environment
func (l *Loader) LoadForEnvironment(environment string) (*Config, error) {
	// Load base config first
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	// Try to load environment-specific override
	if environment != "" {
		envConfigFile := fmt.Sprintf("config.%s", environment)
		l.v.SetConfigName(envConfigFile)

		if err := l.v.MergeInConfig(); err != nil {
			// Not a critical error if environment file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to merge environment config: %w", err)
			}
		}

		// Re-unmarshal with merged configuration
		if err := l.v.Unmarshal(config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal merged config: %w", err)
		}

		// Re-apply env var overrides
		l.overrideWithEnvVars(config)
	}

	return config, nil
}

// GetEnvironment determina el entorno actual desde ENV vars
func GetEnvironment() string {
	env := strings.ToLower(os.Getenv("ENV"))
	if env == "" {
		env = strings.ToLower(os.Getenv("ENVIRONMENT"))
	}
	if env == "" {
		env = "development" // Default
	}
	return env
}
