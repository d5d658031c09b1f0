package handlers

import (
	"net/http"

	"grocery-price-service/internal/application/dto"
	"grocery-price-service/internal/domain/entities"
	"grocery-price-service/internal/domain/interfaces"
	"grocery-price-service/internal/infrastructure/logging"
)

// PriceHandler atiende consultas de precios por producto
type PriceHandler struct {
	priceService interfaces.PriceService
	mapper       *dto.QuoteMapper
}

// NewPriceHandler creates a new instance of the price handler
func NewPriceHandler(priceService interfaces.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
		mapper:       dto.NewQuoteMapper(),
	}
}

// GetPrices godoc
// @Summary Prices for one product across chains
// @Description Returns the prices of a product in every known chain, scaled by quantity. When the source has no data the prices are estimated and flagged with is_authoritative=false.
// @Tags prices
// @Produce json
// @Param product query string true "Product name" example(arroz)
// @Param quantity query number false "Quantity (default 1)" example(2)
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse "Missing product or invalid quantity"
// @Failure 500 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/prices [get]
func (h *PriceHandler) GetPrices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	request, err := dto.NewGetPricesRequest(query.Get("product"), query.Get("quantity"))
	if err != nil {
		writeErrorResponse(ctx, w, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
		return
	}

	quote, err := h.priceService.GetPrices(ctx, request.Product, request.Quantity)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	logging.Debug(ctx, "Quote served", logging.Fields{
		"product":       quote.Product,
		"stores":        len(quote.Prices),
		"authoritative": quote.IsAuthoritative(),
	})
	writeJSONResponse(ctx, w, http.StatusOK, h.mapper.ToQuoteResponse(quote))
}

// ClearCache godoc
// @Summary Clear the quote cache
// @Description Drops every cached quote so the next request goes to the source
// @Tags prices
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/cache [delete]
func (h *PriceHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.priceService.ClearCache(ctx); err != nil {
		logging.ErrorWithError(ctx, "Failed to clear cache", err, nil)
		writeErrorResponse(ctx, w, http.StatusInternalServerError, "CACHE_ERROR", "failed to clear cache")
		return
	}

	logging.Info(ctx, "Quote cache cleared", nil)
	writeJSONResponse(ctx, w, http.StatusOK, dto.MessageResponse{Message: "cache cleared"})
}

// ListStores godoc
// @Summary Supported chains
// @Tags prices
// @Produce json
// @Success 200 {object} dto.StoresResponse
// @Router /api/v1/stores [get]
func (h *PriceHandler) ListStores(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(r.Context(), w, http.StatusOK, h.mapper.ToStoresResponse(entities.KnownStores()))
}
