package logging

import (
	"context"
)

// BaseDomainLogger agrega el campo domain a todo lo que pasa por él
type BaseDomainLogger struct {
	Logger
	domain string
}

func newBase(base Logger, domain string) *BaseDomainLogger {
	return &BaseDomainLogger{Logger: base, domain: domain}
}

func (dl *BaseDomainLogger) Domain() string {
	return dl.domain
}

func (dl *BaseDomainLogger) tag(fields Fields) Fields {
	out := make(Fields, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out[FieldDomain] = dl.domain
	return out
}

func (dl *BaseDomainLogger) logWithDomain(ctx context.Context, level LogLevel, message string, fields Fields) {
	fields = dl.tag(fields)
	switch level {
	case LevelDebug:
		dl.Logger.Debug(ctx, message, fields)
	case LevelWarn:
		dl.Logger.Warn(ctx, message, fields)
	case LevelError:
		dl.Logger.Error(ctx, message, fields)
	default:
		dl.Logger.Info(ctx, message, fields)
	}
}

func (dl *BaseDomainLogger) Debug(ctx context.Context, message string, fields Fields) {
	dl.logWithDomain(ctx, LevelDebug, message, fields)
}

func (dl *BaseDomainLogger) Info(ctx context.Context, message string, fields Fields) {
	dl.logWithDomain(ctx, LevelInfo, message, fields)
}

func (dl *BaseDomainLogger) Warn(ctx context.Context, message string, fields Fields) {
	dl.logWithDomain(ctx, LevelWarn, message, fields)
}

func (dl *BaseDomainLogger) Error(ctx context.Context, message string, fields Fields) {
	dl.logWithDomain(ctx, LevelError, message, fields)
}

func (dl *BaseDomainLogger) WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	dl.Logger.WarnWithError(ctx, message, err, dl.tag(fields))
}

func (dl *BaseDomainLogger) ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	dl.Logger.ErrorWithError(ctx, message, err, dl.tag(fields))
}

// levelForStatus: 4xx warn, 5xx error
func levelForStatus(statusCode int) LogLevel {
	switch {
	case statusCode >= 500:
		return LevelError
	case statusCode >= 400:
		return LevelWarn
	default:
		return LevelInfo
	}
}

type HTTPDomainLogger struct {
	*BaseDomainLogger
}

func NewHTTPLogger(baseLogger Logger) HTTPLogger {
	return &HTTPDomainLogger{BaseDomainLogger: newBase(baseLogger, "http")}
}

func (hl *HTTPDomainLogger) RequestReceived(ctx context.Context, method, path, userAgent, remoteIP string) {
	fields := NewFieldBuilder().
		WithHTTPInfo(method, path, 0).
		WithUserAgent(userAgent).
		WithRemoteIP(remoteIP).
		Build()
	hl.Debug(ctx, "HTTP request received", fields)
}

func (hl *HTTPDomainLogger) RequestCompleted(ctx context.Context, method, path string, statusCode int, duration float64) {
	fields := NewFieldBuilder().
		WithHTTPInfo(method, path, statusCode).
		WithRemoteIP(GetRemoteIP(ctx)).
		WithCustomField(FieldDuration, duration).
		Build()
	hl.logWithDomain(ctx, levelForStatus(statusCode), "HTTP request completed", fields)
}

func (hl *HTTPDomainLogger) RequestFailed(ctx context.Context, method, path string, statusCode int, err error, duration float64) {
	fields := NewFieldBuilder().
		WithHTTPInfo(method, path, statusCode).
		WithUserAgent(GetUserAgent(ctx)).
		WithRemoteIP(GetRemoteIP(ctx)).
		WithCustomField(FieldDuration, duration).
		Build()
	hl.ErrorWithError(ctx, "HTTP request failed", err, fields)
}

type SourceDomainLogger struct {
	*BaseDomainLogger
}

func NewSourceLogger(baseLogger Logger) SourceLogger {
	return &SourceDomainLogger{BaseDomainLogger: newBase(baseLogger, "source")}
}

func (sl *SourceDomainLogger) FetchStarted(ctx context.Context, slug, url string) {
	fields := NewFieldBuilder().
		WithCustomField(FieldSourceSlug, slug).
		WithCustomField(FieldSourceURL, url).
		Build()
	sl.Debug(ctx, "Source fetch started", fields)
}

func (sl *SourceDomainLogger) FetchCompleted(ctx context.Context, slug string, statusCode int, rows int, duration float64) {
	fields := NewFieldBuilder().
		WithCustomField(FieldSourceSlug, slug).
		WithCustomField(FieldSourceStatus, statusCode).
		WithCustomField(FieldSourceRows, rows).
		WithCustomField(FieldSourceDuration, duration).
		Build()
	sl.logWithDomain(ctx, levelForStatus(statusCode), "Source fetch completed", fields)
}

// FetchFailed se loguea en WARN: una falla del sitio nunca es fatal para el caller
func (sl *SourceDomainLogger) FetchFailed(ctx context.Context, slug string, statusCode int, err error, duration float64) {
	fields := NewFieldBuilder().
		WithCustomField(FieldSourceSlug, slug).
		WithCustomField(FieldSourceStatus, statusCode).
		WithCustomField(FieldSourceDuration, duration).
		Build()
	sl.WarnWithError(ctx, "Source fetch failed", err, fields)
}

func (sl *SourceDomainLogger) ParserMatched(ctx context.Context, slug, parser string, rows int) {
	fields := NewFieldBuilder().
		WithCustomField(FieldSourceSlug, slug).
		WithCustomField(FieldSourceParser, parser).
		WithCustomField(FieldSourceRows, rows).
		Build()
	sl.Debug(ctx, "Source document parsed", fields)
}

type CacheDomainLogger struct {
	*BaseDomainLogger
}

func NewCacheLogger(baseLogger Logger) CacheLogger {
	return &CacheDomainLogger{BaseDomainLogger: newBase(baseLogger, "cache")}
}

func (cl *CacheDomainLogger) Hit(ctx context.Context, key string, operation string) {
	cl.Debug(ctx, "Cache hit", NewFieldBuilder().WithCache(operation, key, true).Build())
}

func (cl *CacheDomainLogger) Miss(ctx context.Context, key string, operation string) {
	cl.Debug(ctx, "Cache miss", NewFieldBuilder().WithCache(operation, key, false).Build())
}

func (cl *CacheDomainLogger) Set(ctx context.Context, key string, ttl float64) {
	fields := NewFieldBuilder().
		WithCustomField(FieldCacheKey, key).
		WithCustomField(FieldCacheOperation, CacheOpSet).
		WithCustomField(FieldCacheTTL, ttl).
		Build()
	cl.Debug(ctx, "Cache set", fields)
}

func (cl *CacheDomainLogger) Delete(ctx context.Context, key string) {
	fields := NewFieldBuilder().
		WithCustomField(FieldCacheKey, key).
		WithCustomField(FieldCacheOperation, CacheOpDelete).
		Build()
	cl.Debug(ctx, "Cache delete", fields)
}

func (cl *CacheDomainLogger) CacheError(ctx context.Context, operation, key string, err error) {
	fields := NewFieldBuilder().
		WithCustomField(FieldCacheOperation, operation).
		WithCustomField(FieldCacheKey, key).
		Build()
	cl.ErrorWithError(ctx, "Cache operation failed", err, fields)
}

type PricingDomainLogger struct {
	*BaseDomainLogger
}

func NewPricingLogger(baseLogger Logger) PricingLogger {
	return &PricingDomainLogger{BaseDomainLogger: newBase(baseLogger, "pricing")}
}

func (pl *PricingDomainLogger) QuoteRequested(ctx context.Context, product string, quantity float64) {
	fields := NewFieldBuilder().
		WithCustomField(FieldProduct, product).
		WithCustomField(FieldQuantity, quantity).
		Build()
	pl.Debug(ctx, "Quote requested", fields)
}

func (pl *PricingDomainLogger) QuoteServed(ctx context.Context, product string, best float64, store string, authoritative bool) {
	pl.Info(ctx, "Quote served", NewFieldBuilder().WithQuote(product, best, store, authoritative).Build())
}

func (pl *PricingDomainLogger) FallbackUsed(ctx context.Context, product string, reason string) {
	fields := NewFieldBuilder().
		WithCustomField(FieldProduct, product).
		WithCustomField(FieldReason, reason).
		Build()
	pl.Info(ctx, "Estimated prices used", fields)
}

func (pl *PricingDomainLogger) ValidationFailed(ctx context.Context, input string, reason string) {
	fields := NewFieldBuilder().
		WithCustomField("input", input).
		WithCustomField(FieldReason, reason).
		WithCustomField(FieldValidation, "failed").
		Build()
	pl.Warn(ctx, "Input validation failed", fields)
}

type SecurityDomainLogger struct {
	*BaseDomainLogger
}

func NewSecurityLogger(baseLogger Logger) SecurityLogger {
	return &SecurityDomainLogger{BaseDomainLogger: newBase(baseLogger, "security")}
}

func (sl *SecurityDomainLogger) RateLimitExceeded(ctx context.Context, clientIP string, endpoint string) {
	fields := NewFieldBuilder().
		WithCustomField(FieldClientIP, clientIP).
		WithCustomField("endpoint", endpoint).
		WithCustomField(FieldRateLimit, "exceeded").
		Build()
	sl.Warn(ctx, "Rate limit exceeded", fields)
}

func (sl *SecurityDomainLogger) InvalidRequest(ctx context.Context, clientIP string, reason string) {
	fields := NewFieldBuilder().
		WithCustomField(FieldClientIP, clientIP).
		WithCustomField(FieldReason, reason).
		Build()
	sl.Warn(ctx, "Invalid request received", fields)
}

func (sl *SecurityDomainLogger) SuspiciousActivity(ctx context.Context, clientIP string, activity string) {
	fields := NewFieldBuilder().
		WithCustomField(FieldClientIP, clientIP).
		WithCustomField(FieldSuspiciousReason, activity).
		Build()
	sl.Error(ctx, "Suspicious activity detected", fields)
}
