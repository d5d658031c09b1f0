package handlers

import (
	"net/http"

	"grocery-price-service/internal/application/dto"
	"grocery-price-service/internal/domain/interfaces"
)

// TrendHandler expone la clasificación de tendencia y el forecast
type TrendHandler struct {
	trendService interfaces.TrendService
	mapper       *dto.QuoteMapper
}

func NewTrendHandler(trendService interfaces.TrendService) *TrendHandler {
	return &TrendHandler{
		trendService: trendService,
		mapper:       dto.NewQuoteMapper(),
	}
}

// Forecast godoc
// @Summary Trend of a price series
// @Description Classifies a series as increasing, decreasing or stable (±5%) and projects the price one week ahead when there are at least 3 points.
// @Tags trends
// @Accept json
// @Produce json
// @Param series body dto.ForecastRequest true "Price series"
// @Success 200 {object} dto.TrendResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/trends/forecast [post]
func (h *TrendHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request dto.ForecastRequest
	if err := decodeJSONBody(w, r, &request); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := request.Validate(); err != nil {
		writeServiceError(w, r, err)
		return
	}

	result, err := h.trendService.Forecast(request.ToEntities())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONResponse(ctx, w, http.StatusOK, h.mapper.ToTrendResponse(result, "", ""))
}

// GetTrend godoc
// @Summary Trend from recorded history
// @Description Loads the recorded daily prices of a product in one chain and runs the forecaster over them.
// @Tags trends
// @Produce json
// @Param product query string true "Product name" example(arroz)
// @Param store query string true "Chain" example(lider)
// @Param days query int false "Window in days (default 30)" example(30)
// @Success 200 {object} dto.TrendResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse "History store not configured"
// @Security ApiKeyAuth
// @Router /api/v1/trends [get]
func (h *TrendHandler) GetTrend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	request, err := dto.NewTrendQuery(query.Get("product"), query.Get("store"), query.Get("days"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	result, err := h.trendService.ForecastFor(ctx, request.Product, request.Store, request.Days)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONResponse(ctx, w, http.StatusOK, h.mapper.ToTrendResponse(result, request.Product, request.Store))
}
