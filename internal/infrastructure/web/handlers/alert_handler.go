package handlers

import (
	"net/http"

	"grocery-price-service/internal/application/dto"
	"grocery-price-service/internal/domain/interfaces"
	"grocery-price-service/internal/infrastructure/logging"
)

// AlertHandler administra alertas de precio objetivo
type AlertHandler struct {
	alertService interfaces.AlertService
	mapper       *dto.QuoteMapper
}

func NewAlertHandler(alertService interfaces.AlertService) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
		mapper:       dto.NewQuoteMapper(),
	}
}

// CreateAlert godoc
// @Summary Create a price alert
// @Description Registers an alert that triggers when the best price of the product is at or below the target. The alert is evaluated immediately.
// @Tags alerts
// @Accept json
// @Produce json
// @Param alert body dto.CreateAlertRequest true "Alert"
// @Success 201 {object} dto.AlertResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/alerts [post]
func (h *AlertHandler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request dto.CreateAlertRequest
	if err := decodeJSONBody(w, r, &request); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := request.Validate(); err != nil {
		writeServiceError(w, r, err)
		return
	}

	alert, err := h.alertService.CreateAlert(ctx, request.Product, request.TargetPrice)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONResponse(ctx, w, http.StatusCreated, h.mapper.ToAlertResponse(alert))
}

// ListAlerts godoc
// @Summary List price alerts
// @Tags alerts
// @Produce json
// @Success 200 {object} dto.AlertsResponse
// @Security ApiKeyAuth
// @Router /api/v1/alerts [get]
func (h *AlertHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	writeJSONResponse(ctx, w, http.StatusOK, h.mapper.ToAlertsResponse(h.alertService.ListAlerts(ctx)))
}

// EvaluateAlerts godoc
// @Summary Re-evaluate pending alerts
// @Description Checks every alert that has not triggered yet against current prices
// @Tags alerts
// @Produce json
// @Success 200 {object} dto.AlertsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/alerts/evaluate [post]
func (h *AlertHandler) EvaluateAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	triggered, err := h.alertService.EvaluateAlerts(ctx)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	logging.Info(ctx, "Alerts evaluated", logging.Fields{"triggered": triggered})
	writeJSONResponse(ctx, w, http.StatusOK, h.mapper.ToAlertsResponse(h.alertService.ListAlerts(ctx)))
}
