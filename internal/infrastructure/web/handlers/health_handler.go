package handlers

import (
	"context"
	"net/http"
	"time"

	"grocery-price-service/internal/application/dto"
	"grocery-price-service/internal/domain/interfaces"
)

const readyCheckTimeout = 2 * time.Second

// HealthHandler maneja los endpoints de health check
type HealthHandler struct {
	cache   interfaces.Cache
	history interfaces.HistoryStore
}

// NewHealthHandler crea el handler; history puede ser nil si no está configurado
func NewHealthHandler(cache interfaces.Cache, history interfaces.HistoryStore) *HealthHandler {
	return &HealthHandler{
		cache:   cache,
		history: history,
	}
}

// Health godoc
// @Summary Basic health check
// @Description Verifies that the service is running. Does not touch dependencies.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service is running correctly"
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := dto.NewHealthResponse("healthy", map[string]string{"service": "running"})
	writeJSONResponse(r.Context(), w, http.StatusOK, response)
}

// Ready godoc
// @Summary Readiness check
// @Description Verifies the cache backend answers and reports whether price history is available. A missing history store degrades the service but does not fail readiness.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service is ready to receive traffic"
// @Failure 503 {object} dto.HealthResponse "Cache backend is failing"
// @Router /ready [get]
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
	defer cancel()

	services := map[string]string{"service": "ready"}
	status := "ready"

	if h.cache == nil {
		services["cache"] = "disabled"
	} else if _, err := h.cache.Size(ctx); err != nil {
		services["cache"] = "error: " + err.Error()
		writeJSONResponse(r.Context(), w, http.StatusServiceUnavailable, dto.NewHealthResponse("unhealthy", services))
		return
	} else {
		services["cache"] = "ready"
	}

	if h.history == nil {
		services["history"] = "disabled"
		status = "degraded"
	} else {
		services["history"] = "ready"
	}

	writeJSONResponse(r.Context(), w, http.StatusOK, dto.NewHealthResponse(status, services))
}
