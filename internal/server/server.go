package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/julianstephens/petspa/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// Server runs the appointment API until its context is cancelled.
type Server struct {
	http *http.Server
}

func New(addr string, opts Options) *Server {
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(opts),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Run listens on the configured address and shuts down gracefully when ctx
// is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("appointment service listening", "addr", ln.Addr().String())
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down appointment service")
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
