package dto

import (
	"grocery-price-service/internal/domain/entities"
)

// QuoteMapper maneja la conversión entre entidades del dominio y DTOs
type QuoteMapper struct{}

// NewQuoteMapper crea una nueva instancia del mapper
func NewQuoteMapper() *QuoteMapper {
	return &QuoteMapper{}
}

func (m *QuoteMapper) toStorePriceData(sp entities.StorePrice) StorePriceData {
	return StorePriceData{
		Store:           sp.Store.String(),
		StoreName:       sp.Store.DisplayName(),
		Price:           sp.Price,
		UnitPrice:       sp.UnitPrice,
		Unit:            sp.Unit,
		InStock:         sp.InStock,
		Link:            sp.Link,
		IsAuthoritative: sp.IsAuthoritative,
		EsReal:          sp.IsAuthoritative,
		ObservedAt:      sp.ObservedAt,
	}
}

func (m *QuoteMapper) toStorePrices(prices []entities.StorePrice) []StorePriceData {
	out := make([]StorePriceData, len(prices))
	for i, sp := range prices {
		out[i] = m.toStorePriceData(sp)
	}
	return out
}

// ToQuoteResponse convierte un ProductQuote; Prices nunca es null en el JSON
func (m *QuoteMapper) ToQuoteResponse(quote *entities.ProductQuote) *QuoteResponse {
	resp := &QuoteResponse{
		Product:         quote.Product,
		Slug:            quote.Slug,
		Quantity:        quote.Quantity,
		Prices:          m.toStorePrices(quote.Prices),
		AveragePrice:    quote.AveragePrice,
		MaxSavings:      quote.MaxSavings,
		IsAuthoritative: quote.IsAuthoritative(),
		FetchedAt:       quote.FetchedAt,
	}
	if quote.BestPrice != nil {
		best := m.toStorePriceData(*quote.BestPrice)
		resp.BestPrice = &best
	}
	return resp
}

func (m *QuoteMapper) ToBasketResponse(plan *entities.BasketPlan) *BasketResponse {
	resp := &BasketResponse{
		Items:                 make([]BasketLineData, len(plan.Items)),
		TotalAtOptimalPerItem: plan.TotalAtOptimalPerItem,
		TotalPerStore:         make(map[string]float64, len(plan.TotalPerStore)),
		StoreCoverage:         make(map[string]int, len(plan.StoreCoverage)),
		EstimatedSavings:      plan.EstimatedSavings,
		GeneratedAt:           plan.GeneratedAt,
	}

	for i, line := range plan.Items {
		resp.Items[i] = BasketLineData{
			Product:         line.Product,
			Quantity:        line.Quantity,
			CheapestStore:   line.CheapestStore.String(),
			Price:           line.Price,
			IsAuthoritative: line.Authoritative,
			EsReal:          line.Authoritative,
			Alternatives:    m.toStorePrices(line.Alternatives),
		}
	}
	for store, total := range plan.TotalPerStore {
		resp.TotalPerStore[store.String()] = total
	}
	for store, n := range plan.StoreCoverage {
		resp.StoreCoverage[store.String()] = n
	}
	if plan.HasRecommendation() {
		resp.RecommendedSingleStore = plan.RecommendedSingleStore.String()
		resp.RecommendedStoreTotal = plan.TotalPerStore[plan.RecommendedSingleStore]
	}
	return resp
}

func (m *QuoteMapper) ToTrendResponse(result *entities.TrendResult, product string, store entities.Store) *TrendResponse {
	resp := &TrendResponse{
		Product:          product,
		Store:            store.String(),
		Direction:        string(result.Direction),
		ChangePercentage: result.ChangePercentage,
		Points:           result.Points,
	}
	if result.Forecast != nil {
		resp.Forecast = &ForecastData{
			NextPeriodPrice: result.Forecast.NextPeriodPrice,
			Confidence:      result.Forecast.Confidence,
		}
	}
	return resp
}

func (m *QuoteMapper) ToAlertResponse(alert *entities.PriceAlert) AlertResponse {
	resp := AlertResponse{
		ID:          alert.ID,
		Product:     alert.Product,
		TargetPrice: alert.TargetPrice,
		Triggered:   alert.Triggered,
		CreatedAt:   alert.CreatedAt,
		CheckedAt:   alert.CheckedAt,
	}
	if alert.CurrentBest != nil {
		best := m.toStorePriceData(*alert.CurrentBest)
		resp.CurrentBest = &best
	}
	return resp
}

func (m *QuoteMapper) ToAlertsResponse(alerts []*entities.PriceAlert) *AlertsResponse {
	resp := &AlertsResponse{Alerts: make([]AlertResponse, len(alerts))}
	for i, a := range alerts {
		resp.Alerts[i] = m.ToAlertResponse(a)
	}
	return resp
}

// ToStoresResponse lista las cadenas en el orden estable del dominio
func (m *QuoteMapper) ToStoresResponse(stores []entities.Store) *StoresResponse {
	resp := &StoresResponse{Stores: make([]StoreData, len(stores))}
	for i, s := range stores {
		resp.Stores[i] = StoreData{ID: s.String(), Name: s.DisplayName()}
	}
	return resp
}
