package handlers

import (
	"net/http"

	"grocery-price-service/internal/application/dto"
	"grocery-price-service/internal/domain/interfaces"
	"grocery-price-service/internal/infrastructure/logging"
)

// BasketHandler compara canastas completas
type BasketHandler struct {
	basketService interfaces.BasketService
	mapper        *dto.QuoteMapper
}

func NewBasketHandler(basketService interfaces.BasketService) *BasketHandler {
	return &BasketHandler{
		basketService: basketService,
		mapper:        dto.NewQuoteMapper(),
	}
}

// CompareBasket godoc
// @Summary Compare a shopping basket across chains
// @Description Finds the cheapest chain for every item, the total per chain and the recommended single chain. Items are fetched in small batches, so large baskets take longer.
// @Tags basket
// @Accept json
// @Produce json
// @Param basket body dto.BasketRequest true "Basket items"
// @Success 200 {object} dto.BasketResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 504 {object} dto.ErrorResponse "Basket comparison timed out"
// @Security ApiKeyAuth
// @Router /api/v1/basket [post]
func (h *BasketHandler) CompareBasket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request dto.BasketRequest
	if err := decodeJSONBody(w, r, &request); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := request.Validate(); err != nil {
		writeServiceError(w, r, err)
		return
	}

	plan, err := h.basketService.CompareBasket(ctx, request.ToEntities())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	logging.Info(ctx, "Basket compared", logging.Fields{
		"items":       len(plan.Items),
		"recommended": plan.RecommendedSingleStore.String(),
		"savings":     plan.EstimatedSavings,
	})
	writeJSONResponse(ctx, w, http.StatusOK, h.mapper.ToBasketResponse(plan))
}
