package handlers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"grocery-price-service/internal/domain/entities"
)

type mockPriceService struct {
	mock.Mock
}

func (m *mockPriceService) GetPrices(ctx context.Context, productName string, quantity float64) (*entities.ProductQuote, error) {
	args := m.Called(ctx, productName, quantity)
	if q := args.Get(0); q != nil {
		return q.(*entities.ProductQuote), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPriceService) ClearCache(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockBasketService struct {
	mock.Mock
}

func (m *mockBasketService) CompareBasket(ctx context.Context, items []entities.BasketItem) (*entities.BasketPlan, error) {
	args := m.Called(ctx, items)
	if p := args.Get(0); p != nil {
		return p.(*entities.BasketPlan), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockTrendService struct {
	mock.Mock
}

func (m *mockTrendService) Forecast(series []entities.PricePoint) (*entities.TrendResult, error) {
	args := m.Called(series)
	if r := args.Get(0); r != nil {
		return r.(*entities.TrendResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTrendService) ForecastFor(ctx context.Context, product string, store entities.Store, days int) (*entities.TrendResult, error) {
	args := m.Called(ctx, product, store, days)
	if r := args.Get(0); r != nil {
		return r.(*entities.TrendResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAlertService struct {
	mock.Mock
}

func (m *mockAlertService) CreateAlert(ctx context.Context, product string, targetPrice float64) (*entities.PriceAlert, error) {
	args := m.Called(ctx, product, targetPrice)
	if a := args.Get(0); a != nil {
		return a.(*entities.PriceAlert), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAlertService) ListAlerts(ctx context.Context) []*entities.PriceAlert {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.PriceAlert)
}

func (m *mockAlertService) EvaluateAlerts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// stubCache sólo responde Size
type stubCache struct {
	size int
	err  error
}

func (c *stubCache) Set(context.Context, string, string, time.Duration) error { return nil }
func (c *stubCache) Get(context.Context, string) (string, bool, error)        { return "", false, nil }
func (c *stubCache) Delete(context.Context, string) error                     { return nil }
func (c *stubCache) Clear(context.Context) error                              { return nil }
func (c *stubCache) Size(context.Context) (int, error)                        { return c.size, c.err }

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleQuote() *entities.ProductQuote {
	return entities.NewProductQuote("arroz", []entities.StorePrice{
		{Store: entities.StoreJumbo, Price: 1290, InStock: true, IsAuthoritative: true, ObservedAt: testTime},
		{Store: entities.StoreLider, Price: 1190, InStock: true, IsAuthoritative: true, ObservedAt: testTime},
	}, testTime)
}
