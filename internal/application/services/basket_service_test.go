package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-price-service/internal/domain/entities"
)

func TestBuildBasketPlan_AggregatesPerItemAndPerStore(t *testing.T) {
	items := []entities.BasketItem{{Name: "arroz", Quantity: 1}, {Name: "leche", Quantity: 2}}
	quotes := []*entities.ProductQuote{
		quoteOf("arroz", true, map[entities.Store]float64{entities.StoreJumbo: 1390, entities.StoreLider: 1190}),
		quoteOf("leche", false, map[entities.Store]float64{entities.StoreJumbo: 2100, entities.StoreLider: 2300}),
	}

	plan := BuildBasketPlan(items, quotes, testTime)

	require.Len(t, plan.Items, 2)
	assert.Equal(t, entities.StoreLider, plan.Items[0].CheapestStore)
	assert.Equal(t, 1190.0, plan.Items[0].Price)
	assert.True(t, plan.Items[0].Authoritative)
	require.Len(t, plan.Items[0].Alternatives, 1)
	assert.Equal(t, entities.StoreJumbo, plan.Items[0].Alternatives[0].Store)

	assert.Equal(t, entities.StoreJumbo, plan.Items[1].CheapestStore)
	assert.False(t, plan.Items[1].Authoritative)

	assert.Equal(t, 3290.0, plan.TotalAtOptimalPerItem)
	assert.Equal(t, map[entities.Store]float64{
		entities.StoreJumbo: 3490,
		entities.StoreLider: 3490,
	}, plan.TotalPerStore)
	assert.Equal(t, 2, plan.StoreCoverage[entities.StoreJumbo])

	// empate: gana el primero en el orden fijo de cadenas
	assert.Equal(t, entities.StoreJumbo, plan.RecommendedSingleStore)
	assert.Equal(t, 0.0, plan.EstimatedSavings)
	assert.Equal(t, testTime, plan.GeneratedAt)
}

func TestBuildBasketPlan_StoreWithoutItemsIsNeverRecommended(t *testing.T) {
	items := []entities.BasketItem{{Name: "arroz", Quantity: 1}, {Name: "leche", Quantity: 1}, {Name: "pan", Quantity: 1}}
	quotes := []*entities.ProductQuote{
		quoteOf("arroz", true, map[entities.Store]float64{entities.StoreJumbo: 1000, entities.StoreLider: 1100}),
		quoteOf("leche", true, map[entities.Store]float64{entities.StoreJumbo: 1000, entities.StoreLider: 900}),
		quoteOf("pan", true, map[entities.Store]float64{entities.StoreLider: 800}),
	}
	// Unimarc aparece con precio 0 en un quote armado a mano: no debe sumar
	quotes[2].Prices = append(quotes[2].Prices, entities.StorePrice{Store: entities.StoreUnimarc, Price: 0})

	plan := BuildBasketPlan(items, quotes, testTime)

	_, hasUnimarc := plan.TotalPerStore[entities.StoreUnimarc]
	assert.False(t, hasUnimarc)
	_, hasTottus := plan.TotalPerStore[entities.StoreTottus]
	assert.False(t, hasTottus)

	assert.Equal(t, 2000.0, plan.TotalPerStore[entities.StoreJumbo])
	assert.Equal(t, 2800.0, plan.TotalPerStore[entities.StoreLider])
	assert.Equal(t, entities.StoreJumbo, plan.RecommendedSingleStore)
	assert.Equal(t, 800.0, plan.EstimatedSavings)
	assert.Equal(t, 2, plan.StoreCoverage[entities.StoreJumbo])
	assert.Equal(t, 3, plan.StoreCoverage[entities.StoreLider])
	assert.NotEqual(t, entities.StoreUnimarc, plan.RecommendedSingleStore)
}

func TestBuildBasketPlan_EmptyQuotes(t *testing.T) {
	items := []entities.BasketItem{{Name: "nada", Quantity: 1}}
	quotes := []*entities.ProductQuote{entities.NewProductQuote("nada", nil, testTime)}

	plan := BuildBasketPlan(items, quotes, testTime)

	require.Len(t, plan.Items, 1)
	assert.Empty(t, plan.Items[0].Alternatives)
	assert.Empty(t, plan.TotalPerStore)
	assert.False(t, plan.HasRecommendation())
	assert.Zero(t, plan.TotalAtOptimalPerItem)
	assert.Zero(t, plan.EstimatedSavings)
}

func TestCompareBasket_UsesQuantities(t *testing.T) {
	prices := &stubPriceService{quotes: map[string]*entities.ProductQuote{
		"arroz": quoteOf("arroz", true, map[entities.Store]float64{entities.StoreJumbo: 1000, entities.StoreLider: 1200}),
		"leche": quoteOf("leche", true, map[entities.Store]float64{entities.StoreJumbo: 1000, entities.StoreLider: 700}),
	}}
	svc := NewBasketService(prices, 5, 0)

	plan, err := svc.CompareBasket(context.Background(), []entities.BasketItem{
		{Name: "arroz", Quantity: 2},
		{Name: " leche ", Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, plan.Items[1].Quantity)
	assert.Equal(t, "leche", plan.Items[1].Product)
	assert.Equal(t, 2700.0, plan.TotalAtOptimalPerItem)
	assert.Equal(t, 3000.0, plan.TotalPerStore[entities.StoreJumbo])
	assert.Equal(t, 3100.0, plan.TotalPerStore[entities.StoreLider])
	assert.Equal(t, entities.StoreJumbo, plan.RecommendedSingleStore)
	assert.Equal(t, 100.0, plan.EstimatedSavings)
}

func TestCompareBasket_ZeroQuantityRejected(t *testing.T) {
	prices := &stubPriceService{quotes: map[string]*entities.ProductQuote{}}
	svc := NewBasketService(prices, 5, 0)

	_, err := svc.CompareBasket(context.Background(), []entities.BasketItem{
		{Name: "arroz", Quantity: 1},
		{Name: "leche", Quantity: 0},
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, prices.calls)
}

func TestCompareBasket_BatchesWithDelay(t *testing.T) {
	prices := &stubPriceService{quotes: map[string]*entities.ProductQuote{}}
	delay := 40 * time.Millisecond
	svc := NewBasketService(prices, 2, delay)

	items := []entities.BasketItem{
		{Name: "a", Quantity: 1}, {Name: "b", Quantity: 1}, {Name: "c", Quantity: 1},
		{Name: "d", Quantity: 1}, {Name: "e", Quantity: 1},
	}

	start := time.Now()
	plan, err := svc.CompareBasket(context.Background(), items)
	require.NoError(t, err)

	assert.Len(t, plan.Items, 5)
	assert.Len(t, prices.calls, 5)
	// 3 tandas => 2 pausas
	assert.GreaterOrEqual(t, time.Since(start), 2*delay)

	for i, item := range plan.Items {
		assert.Equal(t, items[i].Name, item.Product)
	}
}

func TestCompareBasket_ContextCancelledBetweenBatches(t *testing.T) {
	prices := &stubPriceService{quotes: map[string]*entities.ProductQuote{}}
	svc := NewBasketService(prices, 1, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := svc.CompareBasket(ctx, []entities.BasketItem{{Name: "a", Quantity: 1}, {Name: "b", Quantity: 1}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Len(t, prices.calls, 1)
}

func TestCompareBasket_InvalidInput(t *testing.T) {
	svc := NewBasketService(&stubPriceService{}, 0, 0)

	_, err := svc.CompareBasket(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyBasket)

	_, err = svc.CompareBasket(context.Background(), []entities.BasketItem{{Name: "arroz", Quantity: -1}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.CompareBasket(context.Background(), []entities.BasketItem{{Name: "", Quantity: 1}})
	assert.ErrorIs(t, err, ErrEmptyProductName)
}
