package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-price-service/internal/infrastructure/config"
	"grocery-price-service/internal/infrastructure/logging"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	cfg := config.AuthConfig{
		Enabled:     true,
		APIKey:      "secreto",
		HeaderName:  "X-API-Key",
		UnauthPaths: []string{"/health", "/swagger/"},
	}

	tests := []struct {
		name         string
		cfg          config.AuthConfig
		path         string
		key          string
		expectedCode int
		errorCode    string
	}{
		{"valid key", cfg, "/api/v1/prices", "secreto", http.StatusOK, ""},
		{"missing key", cfg, "/api/v1/prices", "", http.StatusUnauthorized, "API_KEY_MISSING"},
		{"wrong key", cfg, "/api/v1/basket", "otro", http.StatusUnauthorized, "API_KEY_INVALID"},
		{"exact unauth path", cfg, "/health", "", http.StatusOK, ""},
		{"prefix unauth path", cfg, "/swagger/index.html", "", http.StatusOK, ""},
		{"exact path is not a prefix", cfg, "/healthz", "", http.StatusUnauthorized, "API_KEY_MISSING"},
		{"disabled", config.AuthConfig{Enabled: false}, "/api/v1/prices", "", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthMiddleware(tt.cfg).Handler(okHandler())

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.errorCode != "" {
				var body AuthResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.errorCode, body.Code)
				assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestRequestTracingMiddleware_RequestID(t *testing.T) {
	var seen string
	handler := RequestTracingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.GetRequestID(r.Context())
		w.WriteHeader(http.StatusAccepted)
	}))

	t.Run("generated when absent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil))

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("propagated from client", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil)
		req.Header.Set(RequestIDHeader, "req_cliente")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "req_cliente", seen)
		assert.Equal(t, "req_cliente", rec.Header().Get(RequestIDHeader))
	})
}

func TestIsSuspiciousRequest(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		expected bool
	}{
		{"normal product", "/api/v1/prices?product=arroz", false},
		{"path traversal", "/api/v1/../etc/passwd", true},
		{"encoded script", "/api/v1/prices?product=%3Cscript%3E", true},
		{"raw script in query", "/api/v1/prices?product=<script>", true},
		{"sql union", "/api/v1/prices?product=x%20UNION%20SELECT", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.URL.Path, req.URL.RawQuery, _ = strings.Cut(tt.target, "?")
			assert.Equal(t, tt.expected, isSuspiciousRequest(req))
		})
	}
}
