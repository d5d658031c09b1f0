package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"grocery-price-service/internal/domain/entities"
	"grocery-price-service/internal/domain/interfaces"
	"grocery-price-service/internal/infrastructure/logging"
	"grocery-price-service/internal/infrastructure/metrics"
)

const (
	// TrendThresholdPercent separa stable de increasing/decreasing
	TrendThresholdPercent = 5.0
	// ForecastHorizon es cuántos pasos después del último índice se proyecta
	ForecastHorizon = 7
	// MinForecastPoints es el mínimo de puntos para ajustar la recta
	MinForecastPoints  = 3
	DefaultHistoryDays = 30
)

type trendService struct {
	history     interfaces.HistoryStore
	defaultDays int
}

// NewTrendService acepta history nil; en ese caso sólo funciona Forecast
func NewTrendService(history interfaces.HistoryStore, defaultDays int) interfaces.TrendService {
	if defaultDays <= 0 {
		defaultDays = DefaultHistoryDays
	}
	return &trendService{history: history, defaultDays: defaultDays}
}

func (s *trendService) Forecast(series []entities.PricePoint) (*entities.TrendResult, error) {
	result, err := ForecastSeries(series)
	if err != nil {
		return nil, err
	}
	metrics.RecordForecast(string(result.Direction), result.Forecast != nil)
	return result, nil
}

// ForecastFor lee la serie del histórico y la pronostica
func (s *trendService) ForecastFor(ctx context.Context, product string, store entities.Store, days int) (*entities.TrendResult, error) {
	if s.history == nil {
		return nil, ErrHistoryUnavailable
	}
	product = strings.TrimSpace(product)
	if product == "" {
		return nil, ErrEmptyProductName
	}
	if !store.IsKnown() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, store)
	}
	if days <= 0 {
		days = s.defaultDays
	}

	series, err := s.history.GetSeries(ctx, product, store, days)
	if err != nil {
		return nil, fmt.Errorf("load series for %s@%s: %w", product, store, err)
	}

	logging.Debug(ctx, "Forecasting price series", logging.Fields{
		logging.FieldProduct: product,
		logging.FieldStore:   store.String(),
		"points":             len(series),
		"days":               days,
	})
	if len(series) == 0 {
		return nil, ErrEmptySeries
	}
	return s.Forecast(series)
}

// ForecastSeries clasifica la tendencia y, con 3 o más puntos, proyecta con
// mínimos cuadrados sobre el índice (no sobre el tiempo real).
// Una serie vacía es stable con 0% y sin forecast. La proyección no se acota,
// puede quedar negativa si la pendiente es fuerte.
func ForecastSeries(series []entities.PricePoint) (*entities.TrendResult, error) {
	if len(series) == 0 {
		return &entities.TrendResult{Direction: entities.TrendStable}, nil
	}

	points := make([]entities.PricePoint, len(series))
	copy(points, series)
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})

	first := points[0].Price
	last := points[len(points)-1].Price

	change := 0.0
	if first != 0 {
		change = (last - first) / first * 100
	}

	result := &entities.TrendResult{
		Direction:        classifyTrend(change),
		ChangePercentage: change,
		Points:           len(points),
	}

	if len(points) < MinForecastPoints {
		return result, nil
	}

	slope, intercept, r2 := linearFit(points)
	next := intercept + slope*float64(len(points)-1+ForecastHorizon)
	result.Forecast = &entities.Forecast{
		NextPeriodPrice: next,
		Confidence:      r2,
	}
	return result, nil
}

func classifyTrend(change float64) entities.TrendDirection {
	switch {
	case change > TrendThresholdPercent:
		return entities.TrendIncreasing
	case change < -TrendThresholdPercent:
		return entities.TrendDecreasing
	default:
		return entities.TrendStable
	}
}

// linearFit ajusta y = intercept + slope*x con x = índice. r2 queda en [0,1]
// y vale 1 cuando la serie es plana (SS_total = 0).
func linearFit(points []entities.PricePoint) (slope, intercept, r2 float64) {
	n := float64(len(points))

	var sumX, sumY float64
	for i, p := range points {
		sumX += float64(i)
		sumY += p.Price
	}
	meanX, meanY := sumX/n, sumY/n

	var sxx, sxy float64
	for i, p := range points {
		dx := float64(i) - meanX
		sxx += dx * dx
		sxy += dx * (p.Price - meanY)
	}
	if sxx > 0 {
		slope = sxy / sxx
	}
	intercept = meanY - slope*meanX

	var ssRes, ssTot float64
	for i, p := range points {
		fitted := intercept + slope*float64(i)
		ssRes += (p.Price - fitted) * (p.Price - fitted)
		ssTot += (p.Price - meanY) * (p.Price - meanY)
	}

	if ssTot == 0 {
		return slope, intercept, 1
	}
	r2 = 1 - ssRes/ssTot
	if r2 < 0 {
		r2 = 0
	}
	if r2 > 1 {
		r2 = 1
	}
	return slope, intercept, r2
}
