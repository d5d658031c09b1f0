package logging

import (
	"context"
)

// Logger define la interfaz principal para logging estructurado
type Logger interface {
	Debug(ctx context.Context, message string, fields Fields)
	Info(ctx context.Context, message string, fields Fields)
	Warn(ctx context.Context, message string, fields Fields)
	Error(ctx context.Context, message string, fields Fields)

	InfoWithError(ctx context.Context, message string, err error, fields Fields)
	WarnWithError(ctx context.Context, message string, err error, fields Fields)
	ErrorWithError(ctx context.Context, message string, err error, fields Fields)

	SetLevel(level LogLevel)
	GetLevel() LogLevel
}

// DomainLogger es un Logger que etiqueta cada entrada con su dominio
type DomainLogger interface {
	Logger
	Domain() string
}

// HTTPLogger cubre el ciclo de vida de los requests entrantes
type HTTPLogger interface {
	DomainLogger

	RequestReceived(ctx context.Context, method, path, userAgent, remoteIP string)
	RequestCompleted(ctx context.Context, method, path string, statusCode int, duration float64)
	RequestFailed(ctx context.Context, method, path string, statusCode int, err error, duration float64)
}

// SourceLogger registra las llamadas al sitio externo de precios
type SourceLogger interface {
	DomainLogger

	FetchStarted(ctx context.Context, slug, url string)
	FetchCompleted(ctx context.Context, slug string, statusCode int, rows int, duration float64)
	FetchFailed(ctx context.Context, slug string, statusCode int, err error, duration float64)
	ParserMatched(ctx context.Context, slug, parser string, rows int)
}

// CacheLogger registra operaciones de cache
type CacheLogger interface {
	DomainLogger

	Hit(ctx context.Context, key string, operation string)
	Miss(ctx context.Context, key string, operation string)
	Set(ctx context.Context, key string, ttl float64)
	Delete(ctx context.Context, key string)
	CacheError(ctx context.Context, operation, key string, err error)
}

// PricingLogger registra eventos de agregación, canasta y tendencias
type PricingLogger interface {
	DomainLogger

	QuoteRequested(ctx context.Context, product string, quantity float64)
	QuoteServed(ctx context.Context, product string, best float64, store string, authoritative bool)
	FallbackUsed(ctx context.Context, product string, reason string)
	ValidationFailed(ctx context.Context, input string, reason string)
}

// SecurityLogger registra eventos de seguridad
type SecurityLogger interface {
	DomainLogger

	RateLimitExceeded(ctx context.Context, clientIP string, endpoint string)
	InvalidRequest(ctx context.Context, clientIP string, reason string)
	SuspiciousActivity(ctx context.Context, clientIP string, activity string)
}
