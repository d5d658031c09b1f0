package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ServiceName es el valor del campo "service" en cada línea de log
const ServiceName = "grocery-price-service"

// ErrInvalidConfig envuelve cualquier problema de LoggerConfig
var ErrInvalidConfig = errors.New("invalid logger config")

// LogFormat es el formatter de logrus a usar
type LogFormat string

const (
	FormatJSON LogFormat = "json"
	FormatText LogFormat = "text"
)

// LoggerConfig agrupa lo necesario para construir un logger del servicio.
// Service, Version y Environment se agregan como campos fijos.
type LoggerConfig struct {
	Level       LogLevel
	Format      LogFormat
	Output      io.Writer
	Service     string
	Version     string
	Environment string
	// AddSource activa el caller reporting de logrus
	AddSource bool
}

// DefaultConfig: INFO, JSON a stdout
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:       LevelInfo,
		Format:      FormatJSON,
		Output:      os.Stdout,
		Service:     ServiceName,
		Version:     "dev",
		Environment: "development",
	}
}

func NewConfig(service, version, environment string) *LoggerConfig {
	c := DefaultConfig()
	if service != "" {
		c.Service = service
	}
	if version != "" {
		c.Version = version
	}
	if environment != "" {
		c.Environment = environment
	}
	return c
}

func (c *LoggerConfig) WithLevel(level LogLevel) *LoggerConfig {
	c.Level = level
	return c
}

func (c *LoggerConfig) WithFormat(format LogFormat) *LoggerConfig {
	c.Format = format
	return c
}

func (c *LoggerConfig) WithOutput(output io.Writer) *LoggerConfig {
	c.Output = output
	return c
}

func (c *LoggerConfig) WithSource(addSource bool) *LoggerConfig {
	c.AddSource = addSource
	return c
}

// Validate retorna un error que cumple errors.Is(err, ErrInvalidConfig)
func (c *LoggerConfig) Validate() error {
	switch c.Level {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
	default:
		return fmt.Errorf("%w: unknown level %q", ErrInvalidConfig, c.Level)
	}

	switch c.Format {
	case FormatJSON, FormatText:
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.Format)
	}

	if c.Output == nil {
		return fmt.Errorf("%w: nil output", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Service) == "" {
		return fmt.Errorf("%w: empty service name", ErrInvalidConfig)
	}
	return nil
}

// LogLevelFromString acepta debug/info/warn/warning/error; cualquier otra cosa es INFO
func LogLevelFromString(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// LogFormatFromString: "text" o JSON
func LogFormatFromString(format string) LogFormat {
	if strings.EqualFold(strings.TrimSpace(format), string(FormatText)) {
		return FormatText
	}
	return FormatJSON
}

// OutputFromString mapea "stderr" a os.Stderr; el resto va a stdout
func OutputFromString(output string) io.Writer {
	if strings.EqualFold(strings.TrimSpace(output), "stderr") {
		return os.Stderr
	}
	return os.Stdout
}
