package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"grocery-price-service/internal/infrastructure/config"
	"grocery-price-service/internal/infrastructure/logging"
)

// Server encapsulates HTTP server configuration
type Server struct {
	httpServer *http.Server
	port       int
}

// NewServer creates a new server instance. Timeouts en cero usan los defaults.
func NewServer(handler http.Handler, cfg config.ServerConfig) *Server {
	readTimeout := cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 15 * time.Second
	}
	// una canasta grande tarda varias tandas; el write timeout debe cubrirla
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 60 * time.Second
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           handler,
			ReadTimeout:       readTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       60 * time.Second,
		},
		port: cfg.Port,
	}
}

// Start bloquea hasta que el server se detiene; un Stop ordenado no es error
func (s *Server) Start() error {
	ctx := context.Background()

	logging.Info(ctx, "HTTP server starting", logging.Fields{
		"port": s.port,
	})

	logging.Info(ctx, "Available endpoints", logging.Fields{
		"endpoints": []string{
			fmt.Sprintf("GET    http://localhost:%d/health", s.port),
			fmt.Sprintf("GET    http://localhost:%d/ready", s.port),
			fmt.Sprintf("GET    http://localhost:%d/api/v1/prices?product=arroz&quantity=2", s.port),
			fmt.Sprintf("POST   http://localhost:%d/api/v1/basket", s.port),
			fmt.Sprintf("GET    http://localhost:%d/api/v1/trends?product=arroz&store=lider", s.port),
			fmt.Sprintf("POST   http://localhost:%d/api/v1/trends/forecast", s.port),
			fmt.Sprintf("POST   http://localhost:%d/api/v1/alerts", s.port),
			fmt.Sprintf("DELETE http://localhost:%d/api/v1/cache", s.port),
			fmt.Sprintf("WS     ws://localhost:%d/api/v1/stream?product=leche", s.port),
			fmt.Sprintf("GET    http://localhost:%d/swagger/", s.port),
		},
	})

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the HTTP server gracefully
func (s *Server) Stop(ctx context.Context) error {
	logging.Info(ctx, "Stopping HTTP server gracefully", logging.Fields{
		"port": s.port,
	})

	return s.httpServer.Shutdown(ctx)
}

// GetPort returns the configured port
func (s *Server) GetPort() int {
	return s.port
}
