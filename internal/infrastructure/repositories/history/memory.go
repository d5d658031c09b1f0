package history

import (
	"context"
	"sort"
	"sync"
	"time"

	"grocery-price-service/internal/domain/entities"
)

type seriesKey struct {
	product string
	store   entities.Store
}

// MemoryStore es el histórico en proceso; se pierde al reiniciar
type MemoryStore struct {
	mu     sync.RWMutex
	series map[seriesKey]map[int64]entities.PricePoint
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		series: make(map[seriesKey]map[int64]entities.PricePoint),
		now:    time.Now,
	}
}

func (m *MemoryStore) Record(ctx context.Context, quote *entities.ProductQuote) error {
	if quote.IsEmpty() {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	product := productKey(quote.Product)
	for _, p := range quote.Prices {
		if !p.IsAuthoritative || !p.Store.IsKnown() {
			continue
		}
		observed := p.ObservedAt
		if observed.IsZero() {
			observed = m.now()
		}
		key := seriesKey{product: product, store: p.Store}
		if m.series[key] == nil {
			m.series[key] = make(map[int64]entities.PricePoint)
		}
		m.series[key][dayOf(observed)] = entities.PricePoint{Timestamp: observed.UTC(), Price: p.Price}
	}
	return nil
}

func (m *MemoryStore) GetSeries(ctx context.Context, product string, store entities.Store, days int) ([]entities.PricePoint, error) {
	since, err := windowStart(m.now(), days)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	byDay := m.series[seriesKey{product: productKey(product), store: store}]
	points := make([]entities.PricePoint, 0, len(byDay))
	for day, p := range byDay {
		if day >= since {
			points = append(points, p)
		}
	}
	m.mu.RUnlock()

	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})
	return points, nil
}

func (m *MemoryStore) Close() error { return nil }
