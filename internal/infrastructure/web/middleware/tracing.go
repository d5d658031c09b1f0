package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"grocery-price-service/internal/infrastructure/logging"
)

// RequestIDHeader se respeta si el cliente ya lo envía
const RequestIDHeader = "X-Request-ID"

// ResponseWriter wrapper to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Hijack es necesario para el upgrade del websocket
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusSwitchingProtocols
	}
	return h.Hijack()
}

// RequestTracingMiddleware adds request tracing and structured logging
func RequestTracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if requestID == "" || len(requestID) > 64 {
			requestID = logging.GenerateRequestID()
		}

		startTime := time.Now()
		remoteIP := getClientIP(r)

		ctx := logging.WithRequestID(r.Context(), requestID)
		ctx = logging.WithStartTime(ctx, startTime)
		ctx = logging.WithUserAgent(ctx, r.UserAgent())
		ctx = logging.WithRemoteIP(ctx, remoteIP)

		w.Header().Set(RequestIDHeader, requestID)
		wrapped := &responseWriter{ResponseWriter: w}

		r = r.WithContext(ctx)
		next.ServeHTTP(wrapped, r)

		status := wrapped.statusCode
		if status == 0 {
			status = http.StatusOK
		}
		durationMs := float64(time.Since(startTime).Nanoseconds()) / 1e6

		logging.HTTP().RequestCompleted(ctx, r.Method, r.URL.Path, status, durationMs)
		logging.Debug(ctx, "HTTP response written", logging.Fields{
			"response_size": wrapped.written,
			"request_size":  r.ContentLength,
		})
	})
}
