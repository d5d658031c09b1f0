package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"grocery-price-service/internal/infrastructure/logging"
)

// LoggingMiddleware registra la llegada de cada request y marca los sospechosos.
// RequestTracingMiddleware se encarga del log de cierre.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		remoteIP := getClientIP(r)

		logging.HTTP().RequestReceived(ctx, r.Method, r.URL.Path, r.UserAgent(), remoteIP)

		logging.Debug(ctx, "Processing HTTP request", logging.Fields{
			"headers":        extractImportantHeaders(r),
			"query":          r.URL.RawQuery,
			"content_length": r.ContentLength,
		})

		if isSuspiciousRequest(r) {
			logging.Security().SuspiciousActivity(ctx, remoteIP, "unusual_request_pattern")
		}

		next.ServeHTTP(w, r)
	})
}

// extractImportantHeaders extracts relevant headers for logging
func extractImportantHeaders(r *http.Request) map[string]string {
	headers := make(map[string]string)

	// Log important headers (avoid sensitive data)
	importantHeaders := []string{
		"Content-Type",
		"Accept",
		"Accept-Encoding",
		"Cache-Control",
		"X-Forwarded-For",
		"X-Real-IP",
	}

	for _, header := range importantHeaders {
		if value := r.Header.Get(header); value != "" {
			headers[header] = value
		}
	}

	return headers
}

// isSuspiciousRequest detecta patrones sospechosos en las requests
func isSuspiciousRequest(r *http.Request) bool {
	path := r.URL.Path
	query := r.URL.RawQuery
	if decoded, err := url.QueryUnescape(query); err == nil {
		query = decoded
	}

	// Patrones sospechosos comunes
	suspiciousPatterns := []string{
		"../",
		"<script",
		"union select",
		"drop table",
		"exec(",
		"eval(",
	}

	for _, pattern := range suspiciousPatterns {
		if containsIgnoreCase(path, pattern) || containsIgnoreCase(query, pattern) {
			return true
		}
	}

	// una canasta razonable no pesa más de 1MB
	if r.ContentLength > 1024*1024 {
		return true
	}

	return false
}

// containsIgnoreCase verifica si una cadena contiene otra ignorando mayúsculas/minúsculas
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
