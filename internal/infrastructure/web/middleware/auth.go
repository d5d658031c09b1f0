package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"grocery-price-service/internal/infrastructure/config"
	"grocery-price-service/internal/infrastructure/logging"
	"grocery-price-service/pkg/utils"
)

// AuthMiddleware valida la API key en las rutas que mutan o consultan datos
type AuthMiddleware struct {
	config config.AuthConfig
}

// NewAuthMiddleware creates a new auth middleware instance
func NewAuthMiddleware(cfg config.AuthConfig) *AuthMiddleware {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-API-Key"
	}
	return &AuthMiddleware{config: cfg}
}

// AuthResponse represents the authentication error response
type AuthResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Handler wraps the given handler with API key authentication
func (am *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !am.config.Enabled || am.isUnauthenticatedPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := r.Header.Get(am.config.HeaderName)
		if apiKey == "" {
			am.respondWithAuthError(w, r, "API key missing", "API_KEY_MISSING")
			return
		}
		if !am.isValidAPIKey(apiKey) {
			am.respondWithAuthError(w, r, "Invalid API key", "API_KEY_INVALID")
			return
		}

		logging.Debug(r.Context(), "API key accepted", logging.Fields{
			"path":   r.URL.Path,
			"method": r.Method,
		})
		next.ServeHTTP(w, r)
	})
}

// isUnauthenticatedPath soporta rutas exactas y prefijos terminados en "/"
func (am *AuthMiddleware) isUnauthenticatedPath(path string) bool {
	for _, p := range am.config.UnauthPaths {
		if path == p {
			return true
		}
		if strings.HasSuffix(p, "/") && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func (am *AuthMiddleware) isValidAPIKey(providedKey string) bool {
	return subtle.ConstantTimeCompare([]byte(providedKey), []byte(am.config.APIKey)) == 1
}

func (am *AuthMiddleware) respondWithAuthError(w http.ResponseWriter, r *http.Request, message, code string) {
	clientIP := utils.ClientIP(r)
	logging.Security().InvalidRequest(r.Context(), clientIP, code)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `APIKey header="`+am.config.HeaderName+`"`)
	w.WriteHeader(http.StatusUnauthorized)

	response := AuthResponse{
		Error:   "Authentication Failed",
		Message: message,
		Code:    code,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.ErrorWithError(r.Context(), "Error encoding auth error response", err, nil)
	}
}

func getClientIP(r *http.Request) string {
	return utils.ClientIP(r)
}
