package ratelimit

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"grocery-price-service/internal/infrastructure/config"
	"grocery-price-service/internal/infrastructure/logging"
	"grocery-price-service/internal/infrastructure/metrics"
	"grocery-price-service/pkg/utils"
)

const (
	DefaultCapacity   = 60
	DefaultRefillRate = 10
)

// RateLimitMiddleware limita requests por IP de cliente
type RateLimitMiddleware struct {
	limiter   *ClientLimiters
	skipPaths map[string]bool
	enabled   bool
}

// NewRateLimitMiddleware creates a new rate limiting middleware from config
func NewRateLimitMiddleware(cfg config.RateLimitConfig) *RateLimitMiddleware {
	rlm := &RateLimitMiddleware{
		skipPaths: map[string]bool{
			"/health":  true,
			"/ready":   true,
			"/metrics": true,
		},
		enabled: cfg.Enabled,
	}
	if cfg.Enabled {
		rlm.limiter = NewClientLimiters(cfg.Capacity, cfg.RefillRate)
	}
	return rlm
}

// Handler returns the HTTP middleware handler
func (rlm *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rlm.enabled || rlm.skipPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		clientID := utils.ClientIP(r)
		allowed, remaining := rlm.limiter.Allow(clientID)
		metrics.RecordRateLimitResult(allowed)

		if !allowed {
			logging.Security().RateLimitExceeded(r.Context(), clientID, r.URL.Path)
			rlm.writeRateLimitError(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rlm.limiter.capacity))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		next.ServeHTTP(w, r)
	})
}

// StartCleanup purga clientes inactivos cada interval hasta que ctx se cancele
func (rlm *RateLimitMiddleware) StartCleanup(ctx context.Context, interval time.Duration) {
	if !rlm.enabled {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := rlm.limiter.Cleanup(); n > 0 {
					logging.Debug(ctx, "Rate limiter cleanup", logging.Fields{"removed_clients": n})
				}
			}
		}
	}()
}

func (rlm *RateLimitMiddleware) writeRateLimitError(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.Header().Set("Retry-After", "1")
	w.WriteHeader(http.StatusTooManyRequests)

	errorResponse := map[string]interface{}{
		"error":   "RATE_LIMIT_EXCEEDED",
		"message": "Rate limit exceeded. Please slow down your requests.",
		"code":    http.StatusTooManyRequests,
		"details": map[string]interface{}{
			"retry_after_seconds": 1,
		},
	}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		logging.ErrorWithError(r.Context(), "Error encoding rate limit response", err, nil)
	}
}

// Stats returns rate limiting statistics
func (rlm *RateLimitMiddleware) Stats() map[string]interface{} {
	if rlm.limiter == nil {
		return map[string]interface{}{"enabled": false}
	}
	stats := rlm.limiter.Stats()
	stats["enabled"] = rlm.enabled
	return stats
}
