package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/automenta/mcr/internal/logging"
)

// Server exposes the default Prometheus registry over /metrics.
type Server struct {
	httpServer *http.Server
	log        *logging.Logger
}

// NewServer builds a metrics Server bound to addr. It does not start
// listening until Start is called.
func NewServer(addr string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: logging.Get(logging.CategoryCoordinator),
	}
}

// Start binds the listener and serves in the background until Stop is
// called or the process exits.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("metrics server listen: %w", err)
	}
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("metrics server error: %v", err)
		}
	}()
	s.log.Info("metrics server listening on %s", s.httpServer.Addr)
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
