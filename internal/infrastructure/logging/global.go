package logging

import (
	"context"
)

// Atajos sobre el set global

func Debug(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Debug(ctx, message, fields)
}

func Info(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Info(ctx, message, fields)
}

func Warn(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Warn(ctx, message, fields)
}

func Error(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Error(ctx, message, fields)
}

func InfoWithError(ctx context.Context, message string, err error, fields Fields) {
	GetGlobalLogger().InfoWithError(ctx, message, err, fields)
}

func WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	GetGlobalLogger().WarnWithError(ctx, message, err, fields)
}

func ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	GetGlobalLogger().ErrorWithError(ctx, message, err, fields)
}

func HTTP() HTTPLogger {
	return GetGlobalLoggers().HTTP
}

func Source() SourceLogger {
	return GetGlobalLoggers().Source
}

func Cache() CacheLogger {
	return GetGlobalLoggers().Cache
}

func Pricing() PricingLogger {
	return GetGlobalLoggers().Pricing
}

func Security() SecurityLogger {
	return GetGlobalLoggers().Security
}
