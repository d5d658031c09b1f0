package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-price-service/internal/domain/entities"
)

func TestNewGetPricesRequest(t *testing.T) {
	tests := []struct {
		name      string
		product   string
		quantity  string
		want      *GetPricesRequest
		expectErr bool
	}{
		{"default quantity", " arroz ", "", &GetPricesRequest{Product: "arroz", Quantity: 1}, false},
		{"decimal point", "pan", "1.5", &GetPricesRequest{Product: "pan", Quantity: 1.5}, false},
		{"decimal comma", "pan", "0,5", &GetPricesRequest{Product: "pan", Quantity: 0.5}, false},
		{"missing product", "", "2", nil, true},
		{"zero quantity", "arroz", "0", nil, true},
		{"negative quantity", "arroz", "-1", nil, true},
		{"not a number", "arroz", "dos", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewGetPricesRequest(tt.product, tt.quantity)
			if tt.expectErr {
				assert.ErrorIs(t, err, ErrInvalidRequest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func qty(v float64) *float64 { return &v }

func TestBasketRequest_Validate(t *testing.T) {
	valid := BasketRequest{Items: []BasketItemRequest{{Name: "arroz", Quantity: qty(2)}, {Name: "leche"}}}
	require.NoError(t, valid.Validate())
	assert.Equal(t, []entities.BasketItem{{Name: "arroz", Quantity: 2}, {Name: "leche", Quantity: DefaultQuantity}}, valid.ToEntities())

	assert.ErrorIs(t, (&BasketRequest{}).Validate(), ErrInvalidRequest)
	assert.ErrorIs(t, (&BasketRequest{Items: []BasketItemRequest{{Name: " "}}}).Validate(), ErrInvalidRequest)
	assert.ErrorIs(t, (&BasketRequest{Items: []BasketItemRequest{{Name: "pan", Quantity: qty(-1)}}}).Validate(), ErrInvalidRequest)
	assert.ErrorIs(t, (&BasketRequest{Items: []BasketItemRequest{{Name: "pan", Quantity: qty(0)}}}).Validate(), ErrInvalidRequest)

	tooMany := BasketRequest{Items: make([]BasketItemRequest, MaxBasketItems+1)}
	for i := range tooMany.Items {
		tooMany.Items[i] = BasketItemRequest{Name: "arroz", Quantity: qty(1)}
	}
	assert.ErrorIs(t, tooMany.Validate(), ErrInvalidRequest)
}

func TestForecastRequest(t *testing.T) {
	req := ForecastRequest{Series: []PricePointRequest{{Price: 100}, {Price: 110}}}
	require.NoError(t, req.Validate())

	points := req.ToEntities()
	require.Len(t, points, 2)
	assert.True(t, points[0].Timestamp.Before(points[1].Timestamp))

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	withTime := ForecastRequest{Series: []PricePointRequest{{Timestamp: ts, Price: 100}}}
	assert.Equal(t, ts, withTime.ToEntities()[0].Timestamp)

	assert.ErrorIs(t, (&ForecastRequest{}).Validate(), ErrInvalidRequest)
	assert.ErrorIs(t, (&ForecastRequest{Series: []PricePointRequest{{Price: -1}}}).Validate(), ErrInvalidRequest)
}

func TestForecastRequest_MixedTimestampsRejected(t *testing.T) {
	ts := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	mixed := ForecastRequest{Series: []PricePointRequest{{Timestamp: ts, Price: 100}, {Price: 110}, {Timestamp: ts.AddDate(0, 0, 1), Price: 120}}}
	assert.ErrorIs(t, mixed.Validate(), ErrInvalidRequest)

	untimedFirst := ForecastRequest{Series: []PricePointRequest{{Price: 100}, {Timestamp: ts, Price: 110}}}
	assert.ErrorIs(t, untimedFirst.Validate(), ErrInvalidRequest)

	allTimed := ForecastRequest{Series: []PricePointRequest{{Timestamp: ts.AddDate(0, 0, 1), Price: 120}, {Timestamp: ts, Price: 100}}}
	require.NoError(t, allTimed.Validate())
	assert.Equal(t, ts.AddDate(0, 0, 1), allTimed.ToEntities()[0].Timestamp)
}

func TestNewTrendQuery(t *testing.T) {
	q, err := NewTrendQuery("arroz", "Sta Isabel", "14")
	require.NoError(t, err)
	assert.Equal(t, &TrendQuery{Product: "arroz", Store: entities.StoreSantaIsabel, Days: 14}, q)

	q, err = NewTrendQuery("arroz", "lider", "")
	require.NoError(t, err)
	assert.Zero(t, q.Days)

	for _, tc := range [][3]string{
		{"", "lider", "7"},
		{"arroz", "ekono", "7"},
		{"arroz", "lider", "0"},
		{"arroz", "lider", "400"},
		{"arroz", "lider", "siete"},
	} {
		_, err := NewTrendQuery(tc[0], tc[1], tc[2])
		assert.ErrorIs(t, err, ErrInvalidRequest, "%v", tc)
	}
}

func TestCreateAlertRequest_Validate(t *testing.T) {
	assert.NoError(t, (&CreateAlertRequest{Product: "aceite", TargetPrice: 2500}).Validate())
	assert.ErrorIs(t, (&CreateAlertRequest{TargetPrice: 2500}).Validate(), ErrInvalidRequest)
	assert.ErrorIs(t, (&CreateAlertRequest{Product: "aceite"}).Validate(), ErrInvalidRequest)
}
