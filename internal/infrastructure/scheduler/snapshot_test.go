package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-price-service/internal/domain/entities"
	"grocery-price-service/internal/infrastructure/repositories/history"
)

type fakePrices struct {
	mu     sync.Mutex
	quotes map[string]*entities.ProductQuote
	errs   map[string]error
	calls  int
}

func (f *fakePrices) GetPrices(ctx context.Context, name string, qty float64) (*entities.ProductQuote, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if err := f.errs[name]; err != nil {
		return nil, err
	}
	return f.quotes[name], nil
}

func (f *fakePrices) ClearCache(ctx context.Context) error { return nil }

type fakeAlerts struct {
	evaluated int
}

func (f *fakeAlerts) CreateAlert(ctx context.Context, product string, target float64) (*entities.PriceAlert, error) {
	return nil, nil
}

func (f *fakeAlerts) ListAlerts(ctx context.Context) []*entities.PriceAlert { return nil }

func (f *fakeAlerts) EvaluateAlerts(ctx context.Context) (int, error) {
	f.evaluated++
	return 2, nil
}

func quote(product string, authoritative bool, price float64) *entities.ProductQuote {
	return entities.NewProductQuote(product, []entities.StorePrice{
		{Store: entities.StoreJumbo, Price: price, IsAuthoritative: authoritative, ObservedAt: time.Now()},
	}, time.Now())
}

func TestNewSnapshotJob_Validation(t *testing.T) {
	_, err := NewSnapshotJob(Config{Spec: "every tuesday", Watchlist: []string{"arroz"}}, &fakePrices{}, nil, nil)
	assert.Error(t, err)

	_, err = NewSnapshotJob(Config{Watchlist: []string{" ", ""}}, &fakePrices{}, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyWatchlist)

	job, err := NewSnapshotJob(Config{Watchlist: []string{"arroz"}}, &fakePrices{}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultSpec, job.cfg.Spec)
	assert.Equal(t, DefaultRunTimeout, job.cfg.RunTimeout)
}

func TestSnapshotJob_RunRecordsOnlyAuthoritativeQuotes(t *testing.T) {
	ctx := context.Background()
	store := history.NewMemoryStore()
	alerts := &fakeAlerts{}
	prices := &fakePrices{
		quotes: map[string]*entities.ProductQuote{
			"arroz": quote("arroz", true, 1390),
			"leche": quote("leche", false, 1150),
		},
		errs: map[string]error{"pan": errors.New("boom")},
	}

	job, err := NewSnapshotJob(Config{Watchlist: []string{"arroz", "leche", "pan"}}, prices, store, alerts)
	require.NoError(t, err)

	result, err := job.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, RunResult{Products: 3, Recorded: 1, Estimated: 1, Failed: 1, Triggered: 2}, result)
	assert.Equal(t, 1, alerts.evaluated)

	series, err := store.GetSeries(ctx, "arroz", entities.StoreJumbo, 1)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, 1390.0, series[0].Price)

	leche, err := store.GetSeries(ctx, "leche", entities.StoreJumbo, 1)
	require.NoError(t, err)
	assert.Empty(t, leche)
}

func TestSnapshotJob_RunStopsOnCancelledContext(t *testing.T) {
	prices := &fakePrices{quotes: map[string]*entities.ProductQuote{}}
	job, err := NewSnapshotJob(Config{Watchlist: []string{"arroz", "leche"}}, prices, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = job.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, prices.calls)
}

func TestSnapshotJob_StartStop(t *testing.T) {
	job, err := NewSnapshotJob(Config{Spec: "@every 1h", Watchlist: []string{"arroz"}}, &fakePrices{}, nil, nil)
	require.NoError(t, err)

	require.NoError(t, job.Start())
	require.NoError(t, job.Start())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, job.Stop(ctx))
	assert.NoError(t, job.Stop(ctx))
}
