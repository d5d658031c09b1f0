package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"grocery-price-service/internal/application/dto"
	"grocery-price-service/internal/domain/interfaces"
	"grocery-price-service/internal/infrastructure/logging"
)

const (
	DefaultStreamInterval = 30 * time.Second
	streamWriteWait       = 10 * time.Second
	streamPongWait        = 60 * time.Second
	streamPingInterval    = (streamPongWait * 9) / 10
)

// StreamHandler empuja el quote de un producto por websocket cada interval.
// Con cache activo casi todos los pushes salen del cache.
type StreamHandler struct {
	priceService interfaces.PriceService
	mapper       *dto.QuoteMapper
	upgrader     websocket.Upgrader
	interval     time.Duration
}

func NewStreamHandler(priceService interfaces.PriceService, interval time.Duration) *StreamHandler {
	if interval <= 0 {
		interval = DefaultStreamInterval
	}
	return &StreamHandler{
		priceService: priceService,
		mapper:       dto.NewQuoteMapper(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// el frontend se sirve desde otro origen
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		interval: interval,
	}
}

// Stream godoc
// @Summary Live quote stream
// @Description Upgrades to a websocket and pushes a dto.StreamMessage with the product quote periodically. The client only needs to answer pings.
// @Tags prices
// @Param product query string true "Product name" example(leche)
// @Param quantity query number false "Quantity (default 1)"
// @Success 101 {object} dto.StreamMessage
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/stream [get]
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	request, err := dto.NewGetPricesRequest(query.Get("product"), query.Get("quantity"))
	if err != nil {
		writeErrorResponse(r.Context(), w, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade ya respondió al cliente
		logging.WarnWithError(r.Context(), "Websocket upgrade failed", err, nil)
		return
	}
	defer conn.Close()

	// el request context muere con el hijack; se usa uno propio
	ctx, cancel := context.WithCancel(logging.WithRequestID(context.Background(), logging.GetRequestID(r.Context())))
	defer cancel()

	logging.Info(ctx, "Quote stream opened", logging.Fields{
		"product":  request.Product,
		"interval": h.interval.String(),
	})

	go h.readLoop(conn, cancel)

	if !h.push(ctx, conn, request) {
		return
	}

	quotes := time.NewTicker(h.interval)
	defer quotes.Stop()
	pings := time.NewTicker(streamPingInterval)
	defer pings.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info(ctx, "Quote stream closed", logging.Fields{"product": request.Product})
			return
		case <-pings.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-quotes.C:
			if !h.push(ctx, conn, request) {
				return
			}
		}
	}
}

// readLoop descarta mensajes del cliente y cancela al cerrarse la conexión
func (h *StreamHandler) readLoop(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// push escribe un mensaje; retorna false si la conexión ya no sirve
func (h *StreamHandler) push(ctx context.Context, conn *websocket.Conn, request *dto.GetPricesRequest) bool {
	msg := dto.StreamMessage{Type: "quote", Timestamp: time.Now().UTC()}

	quote, err := h.priceService.GetPrices(ctx, request.Product, request.Quantity)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		msg.Type = "error"
		msg.Error = err.Error()
	} else {
		msg.Quote = h.mapper.ToQuoteResponse(quote)
	}

	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	if err := conn.WriteJSON(msg); err != nil {
		logging.Debug(ctx, "Quote stream write failed", logging.Fields{"error": err.Error()})
		return false
	}
	return true
}
