package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-price-service/internal/domain/entities"
)

func TestCreateAlert(t *testing.T) {
	prices := &stubPriceService{quotes: map[string]*entities.ProductQuote{
		"arroz": quoteOf("arroz", true, map[entities.Store]float64{entities.StoreJumbo: 1390, entities.StoreLider: 1190}),
	}}

	tests := []struct {
		name          string
		target        float64
		wantTriggered bool
	}{
		{"target above best", 1200, true},
		{"target equal to best", 1190, true},
		{"target below best", 1000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAlertService(prices)

			alert, err := svc.CreateAlert(context.Background(), "arroz", tt.target)
			require.NoError(t, err)

			assert.NotEmpty(t, alert.ID)
			assert.Equal(t, tt.wantTriggered, alert.Triggered)
			require.NotNil(t, alert.CurrentBest)
			assert.Equal(t, entities.StoreLider, alert.CurrentBest.Store)
			assert.False(t, alert.CheckedAt.IsZero())
		})
	}
}

func TestCreateAlert_InvalidInput(t *testing.T) {
	svc := NewAlertService(&stubPriceService{})

	_, err := svc.CreateAlert(context.Background(), "", 100)
	assert.ErrorIs(t, err, ErrEmptyProductName)

	_, err = svc.CreateAlert(context.Background(), "arroz", 0)
	assert.ErrorIs(t, err, ErrInvalidTargetPrice)

	assert.Empty(t, svc.ListAlerts(context.Background()))
}

func TestEvaluateAlerts_TriggersWhenPriceDrops(t *testing.T) {
	ctx := context.Background()
	prices := &stubPriceService{quotes: map[string]*entities.ProductQuote{
		"cafe": quoteOf("cafe", true, map[entities.Store]float64{entities.StoreJumbo: 5490}),
	}}
	svc := NewAlertService(prices)

	alert, err := svc.CreateAlert(ctx, "cafe", 5000)
	require.NoError(t, err)
	require.False(t, alert.Triggered)

	n, err := svc.EvaluateAlerts(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	prices.quotes["cafe"] = quoteOf("cafe", true, map[entities.Store]float64{entities.StoreJumbo: 4890})

	n, err = svc.EvaluateAlerts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	listed := svc.ListAlerts(ctx)
	require.Len(t, listed, 1)
	assert.True(t, listed[0].Triggered)
	assert.Equal(t, 4890.0, listed[0].CurrentBest.Price)

	// las ya disparadas no se reevalúan
	calls := len(prices.calls)
	n, err = svc.EvaluateAlerts(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, prices.calls, calls)
}

func TestListAlerts_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	svc := NewAlertService(&stubPriceService{quotes: map[string]*entities.ProductQuote{}})

	_, err := svc.CreateAlert(ctx, "sal", 500)
	require.NoError(t, err)

	listed := svc.ListAlerts(ctx)
	require.Len(t, listed, 1)
	listed[0].TargetPrice = 1

	assert.Equal(t, 500.0, svc.ListAlerts(ctx)[0].TargetPrice)
}
