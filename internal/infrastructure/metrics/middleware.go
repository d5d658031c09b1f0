package metrics

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"
)

// HTTPMetricsMiddleware registra conteo, latencia y tamaño de respuesta por ruta
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()

		wrapped := &responseWriterMetrics{ResponseWriter: w, statusCode: http.StatusOK}
		normalizedPath := normalizePath(r.URL.Path)
		method := r.Method

		next.ServeHTTP(wrapped, r)

		RecordHTTPRequest(method, normalizedPath, wrapped.statusCode, time.Since(startTime).Seconds(), wrapped.written)
	})
}

// responseWriterMetrics wraps http.ResponseWriter to capture metrics
type responseWriterMetrics struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

// WriteHeader captures the status code
func (rw *responseWriterMetrics) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Write captures the response size
func (rw *responseWriterMetrics) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Hijack deja pasar el upgrade de websocket del stream de cotizaciones
func (rw *responseWriterMetrics) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return h.Hijack()
}

// normalizePath colapsa rutas dinámicas para acotar la cardinalidad
func normalizePath(path string) string {
	if path == "/" {
		return "/"
	}
	path = strings.TrimSuffix(path, "/")

	switch {
	case path == "/health", path == "/ready", path == "/metrics":
		return path
	case strings.HasPrefix(path, "/swagger"):
		return "/swagger"
	case strings.HasPrefix(path, "/api/v1/trends/forecast"):
		return "/api/v1/trends/forecast"
	case strings.HasPrefix(path, "/api/v1/alerts"):
		return "/api/v1/alerts"
	case path == "/api/v1/prices", path == "/api/v1/basket", path == "/api/v1/trends",
		path == "/api/v1/cache", path == "/api/v1/stores", path == "/api/v1/stream":
		return path
	case strings.HasPrefix(path, "/api/v1/"):
		return "/api/v1/*"
	default:
		return "/unknown"
	}
}
