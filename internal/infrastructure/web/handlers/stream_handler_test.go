package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"grocery-price-service/internal/application/dto"
)

func dialStream(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/stream" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestStreamHandler_PushesQuotes(t *testing.T) {
	svc := &mockPriceService{}
	svc.On("GetPrices", mock.Anything, "arroz", 1.0).Return(sampleQuote(), nil)

	server := httptest.NewServer(http.HandlerFunc(NewStreamHandler(svc, 20*time.Millisecond).Stream))
	defer server.Close()

	conn := dialStream(t, server, "?product=arroz")
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	// el primero sale inmediatamente, el segundo con el ticker
	for i := 0; i < 2; i++ {
		var msg dto.StreamMessage
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, "quote", msg.Type)
		require.NotNil(t, msg.Quote)
		assert.Equal(t, "arroz", msg.Quote.Product)
	}
}

func TestStreamHandler_ErrorMessage(t *testing.T) {
	svc := &mockPriceService{}
	svc.On("GetPrices", mock.Anything, "arroz", 1.0).Return(nil, errors.New("boom"))

	server := httptest.NewServer(http.HandlerFunc(NewStreamHandler(svc, time.Hour).Stream))
	defer server.Close()

	conn := dialStream(t, server, "?product=arroz")
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var msg dto.StreamMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, "boom", msg.Error)
	assert.Nil(t, msg.Quote)
}

func TestStreamHandler_RejectsMissingProduct(t *testing.T) {
	rec := httptest.NewRecorder()
	NewStreamHandler(&mockPriceService{}, 0).Stream(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stream", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
