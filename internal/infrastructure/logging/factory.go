package logging

import (
	"fmt"
	"sync"
)

// LoggerSet agrupa el logger base y los loggers de dominio
type LoggerSet struct {
	Base     Logger
	HTTP     HTTPLogger
	Source   SourceLogger
	Cache    CacheLogger
	Pricing  PricingLogger
	Security SecurityLogger
}

// NewLoggerSet construye todos los loggers de dominio sobre un mismo base
func NewLoggerSet(config *LoggerConfig) (*LoggerSet, error) {
	base, err := NewStructuredLogger(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create base logger: %w", err)
	}
	return newLoggerSetFrom(base), nil
}

func newLoggerSetFrom(base Logger) *LoggerSet {
	return &LoggerSet{
		Base:     base,
		HTTP:     NewHTTPLogger(base),
		Source:   NewSourceLogger(base),
		Cache:    NewCacheLogger(base),
		Pricing:  NewPricingLogger(base),
		Security: NewSecurityLogger(base),
	}
}

var (
	globalMu      sync.RWMutex
	globalLoggers *LoggerSet
)

// InitializeGlobalLoggers reemplaza el set global
func InitializeGlobalLoggers(config *LoggerConfig) error {
	set, err := NewLoggerSet(config)
	if err != nil {
		return fmt.Errorf("failed to initialize global loggers: %w", err)
	}
	globalMu.Lock()
	globalLoggers = set
	globalMu.Unlock()
	return nil
}

// SetGlobalLogger permite inyectar un Logger propio (tests)
func SetGlobalLogger(base Logger) {
	globalMu.Lock()
	globalLoggers = newLoggerSetFrom(base)
	globalMu.Unlock()
}

// GetGlobalLoggers inicializa con defaults si nadie lo hizo antes
func GetGlobalLoggers() *LoggerSet {
	globalMu.RLock()
	set := globalLoggers
	globalMu.RUnlock()
	if set != nil {
		return set
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLoggers == nil {
		base, _ := NewStructuredLogger(DefaultConfig())
		globalLoggers = newLoggerSetFrom(base)
	}
	return globalLoggers
}

func GetGlobalLogger() Logger {
	return GetGlobalLoggers().Base
}

// NewDevelopmentConfig: texto, debug y caller
func NewDevelopmentConfig(service string) *LoggerConfig {
	return NewConfig(service, "dev", "development").
		WithLevel(LevelDebug).
		WithFormat(FormatText).
		WithSource(true)
}
