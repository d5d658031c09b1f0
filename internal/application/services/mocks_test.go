package services

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"grocery-price-service/internal/domain/entities"
)

type mockPriceSource struct {
	mock.Mock
}

func (m *mockPriceSource) FetchStorePrices(ctx context.Context, productName string) (*entities.ProductQuote, error) {
	args := m.Called(ctx, productName)
	quote, _ := args.Get(0).(*entities.ProductQuote)
	return quote, args.Error(1)
}

type mockHistoryStore struct {
	mock.Mock
}

func (m *mockHistoryStore) GetSeries(ctx context.Context, product string, store entities.Store, days int) ([]entities.PricePoint, error) {
	args := m.Called(ctx, product, store, days)
	series, _ := args.Get(0).([]entities.PricePoint)
	return series, args.Error(1)
}

func (m *mockHistoryStore) Record(ctx context.Context, quote *entities.ProductQuote) error {
	return m.Called(ctx, quote).Error(0)
}

func (m *mockHistoryStore) Close() error {
	return m.Called().Error(0)
}

// fixedRand retorna siempre el mismo valor
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

// stubPriceService sirve quotes fijos por producto y registra el orden de llamadas
type stubPriceService struct {
	mu      sync.Mutex
	quotes  map[string]*entities.ProductQuote
	calls   []string
	callAt  []time.Time
	cleared int
}

func (s *stubPriceService) GetPrices(ctx context.Context, productName string, quantity float64) (*entities.ProductQuote, error) {
	s.mu.Lock()
	s.calls = append(s.calls, productName)
	s.callAt = append(s.callAt, time.Now())
	s.mu.Unlock()

	if q, ok := s.quotes[productName]; ok {
		return q.Scale(quantity)
	}
	return entities.NewProductQuote(productName, nil, time.Now()), nil
}

func (s *stubPriceService) ClearCache(ctx context.Context) error {
	s.cleared++
	return nil
}

func quoteOf(product string, authoritative bool, prices map[entities.Store]float64) *entities.ProductQuote {
	observed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var list []entities.StorePrice
	for _, store := range entities.KnownStores() {
		if p, ok := prices[store]; ok {
			list = append(list, entities.StorePrice{
				Store:           store,
				Price:           p,
				InStock:         true,
				IsAuthoritative: authoritative,
				ObservedAt:      observed,
			})
		}
	}
	return entities.NewProductQuote(product, list, observed)
}
