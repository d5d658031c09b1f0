package logging

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// StructuredLogger implementa Logger sobre logrus
type StructuredLogger struct {
	config *LoggerConfig
	logger *logrus.Logger
	base   logrus.Fields
}

// NewStructuredLogger crea un logger logrus a partir de la configuración
func NewStructuredLogger(config *LoggerConfig) (*StructuredLogger, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetOutput(config.Output)
	l.SetLevel(toLogrusLevel(config.Level))
	l.SetReportCaller(config.AddSource)

	switch config.Format {
	case FormatText:
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	default:
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyMsg: FieldMessage,
			},
		})
	}

	base := logrus.Fields{FieldService: config.Service}
	if config.Version != "" {
		base[FieldVersion] = config.Version
	}
	if config.Environment != "" {
		base["environment"] = config.Environment
	}

	return &StructuredLogger{config: config, logger: l, base: base}, nil
}

func toLogrusLevel(level LogLevel) logrus.Level {
	switch level {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func fromLogrusLevel(level logrus.Level) LogLevel {
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return LevelDebug
	case logrus.WarnLevel:
		return LevelWarn
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return LevelError
	default:
		return LevelInfo
	}
}

// entry arma el logrus.Entry con request id, duración y campos del caller
func (sl *StructuredLogger) entry(ctx context.Context, fields Fields) *logrus.Entry {
	data := make(logrus.Fields, len(sl.base)+len(fields)+2)
	for k, v := range sl.base {
		data[k] = v
	}
	if ctx != nil {
		if requestID := GetRequestID(ctx); requestID != "" {
			data[FieldRequestID] = requestID
		}
		if startTime := GetStartTime(ctx); !startTime.IsZero() {
			data[FieldDuration] = float64(time.Since(startTime).Nanoseconds()) / 1e6
		}
	}
	for k, v := range fields {
		data[k] = v
	}
	return sl.logger.WithFields(data)
}

func (sl *StructuredLogger) Debug(ctx context.Context, message string, fields Fields) {
	sl.entry(ctx, fields).Debug(message)
}

func (sl *StructuredLogger) Info(ctx context.Context, message string, fields Fields) {
	sl.entry(ctx, fields).Info(message)
}

func (sl *StructuredLogger) Warn(ctx context.Context, message string, fields Fields) {
	sl.entry(ctx, fields).Warn(message)
}

func (sl *StructuredLogger) Error(ctx context.Context, message string, fields Fields) {
	sl.entry(ctx, fields).Error(message)
}

func (sl *StructuredLogger) InfoWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.entry(ctx, withError(fields, err)).Info(message)
}

func (sl *StructuredLogger) WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.entry(ctx, withError(fields, err)).Warn(message)
}

func (sl *StructuredLogger) ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.entry(ctx, withError(fields, err)).Error(message)
}

// withError agrega error y error_type sin mutar el mapa del caller
func withError(fields Fields, err error) Fields {
	if err == nil {
		return fields
	}
	out := make(Fields, len(fields)+2)
	for k, v := range fields {
		out[k] = v
	}
	out[FieldError] = err.Error()
	out[FieldErrorType] = getErrorType(err)
	return out
}

// SetLevel cambia el nivel en caliente
func (sl *StructuredLogger) SetLevel(level LogLevel) {
	sl.logger.SetLevel(toLogrusLevel(level))
}

func (sl *StructuredLogger) GetLevel() LogLevel {
	return fromLogrusLevel(sl.logger.GetLevel())
}

// GetConfig retorna la configuración con la que se creó el logger
func (sl *StructuredLogger) GetConfig() *LoggerConfig {
	return sl.config
}
