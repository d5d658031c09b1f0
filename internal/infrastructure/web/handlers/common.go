package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"grocery-price-service/internal/application/dto"
	"grocery-price-service/internal/application/services"
	"grocery-price-service/internal/infrastructure/logging"
)

// maxBodyBytes acota el body de POST (canastas y series)
const maxBodyBytes = 1 << 20

// writeJSONResponse escribe data como JSON con el status indicado
func writeJSONResponse(ctx context.Context, w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.ErrorWithError(ctx, "Failed to encode JSON response", err, logging.Fields{
			"status_code": statusCode,
		})
	}
}

func writeErrorResponse(ctx context.Context, w http.ResponseWriter, statusCode int, errorCode, message string) {
	writeJSONResponse(ctx, w, statusCode, dto.NewErrorResponseWithCode(errorCode, message, strconv.Itoa(statusCode)))
}

// writeServiceError traduce errores de servicios a respuestas HTTP
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, services.ErrEmptySeries):
		// sólo ocurre al leer el histórico; los bodies vacíos se rechazan antes
		writeErrorResponse(ctx, w, http.StatusNotFound, "NO_HISTORY", "no recorded prices for the requested window")
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, dto.ErrInvalidRequest):
		writeErrorResponse(ctx, w, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
	case errors.Is(err, services.ErrHistoryUnavailable):
		writeErrorResponse(ctx, w, http.StatusServiceUnavailable, "HISTORY_UNAVAILABLE", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeErrorResponse(ctx, w, http.StatusGatewayTimeout, "TIMEOUT", "request took too long")
	case errors.Is(err, context.Canceled):
		// el cliente se fue; no tiene sentido responder
		logging.Debug(ctx, "Request cancelled by client", nil)
	default:
		logging.HTTP().RequestFailed(ctx, r.Method, r.URL.Path, http.StatusInternalServerError, err, elapsedMillis(ctx))
		writeErrorResponse(ctx, w, http.StatusInternalServerError, "INTERNAL_ERROR", "unexpected error")
	}
}

// elapsedMillis usa el inicio que deja el middleware de tracing
func elapsedMillis(ctx context.Context) float64 {
	start := logging.GetStartTime(ctx)
	if start.IsZero() {
		return 0
	}
	return float64(time.Since(start).Nanoseconds()) / 1e6
}

// decodeJSONBody lee el body con límite de tamaño y rechaza campos desconocidos
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: request body is empty", dto.ErrInvalidRequest)
		case errors.As(err, &maxErr):
			return fmt.Errorf("%w: request body too large", dto.ErrInvalidRequest)
		default:
			return fmt.Errorf("%w: malformed JSON body: %v", dto.ErrInvalidRequest, err)
		}
	}
	return nil
}
