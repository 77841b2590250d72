package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the global registry over HTTP for scraping
type Server struct {
	httpServer *http.Server
	listener   net.Listener
}

// NewServer creates a metrics server bound to host:port serving path.
// InitRegistry must have been called first.
func NewServer(host string, port int, path string) (*Server, error) {
	if Registry == nil {
		return nil, errors.New("metrics registry not initialized")
	}

	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry}))

	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen for metrics: %w", err)
	}

	return &Server{
		httpServer: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		listener: listener,
	}, nil
}

// Addr returns the bound address (useful when port 0 was requested)
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Start serves in a background goroutine
func (s *Server) Start() {
	go func() {
		_ = s.httpServer.Serve(s.listener)
	}()
}

// Shutdown stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Setup initializes the registry and installs every collector as the global recorder.
// It returns the handler collector for use with PrometheusMiddleware.
func Setup() (*HandlerMetricsCollector, error) {
	InitRegistry()

	provider := NewProviderMetricsCollector()
	cache := NewCacheMetricsCollector()
	query := NewQueryMetricsCollector()
	handler := NewHandlerMetricsCollector()

	for _, r := range []interface{ Register() error }{provider, cache, query, handler} {
		if err := r.Register(); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	SetGlobalProviderCollector(provider)
	SetGlobalCacheCollector(cache)
	SetGlobalQueryCollector(query)

	return handler, nil
}
