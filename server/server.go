// Package server exposes the conversion engine over HTTP and a websocket.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/teranos/hiero/am"
	"github.com/teranos/hiero/errors"
	"github.com/teranos/hiero/history"
	"github.com/teranos/hiero/logger"
)

// Server timeouts
const (
	ShutdownTimeout   = 10 * time.Second
	ReadHeaderTimeout = 5 * time.Second
	IdleTimeout       = 120 * time.Second

	// How often idle rate-limit buckets are swept
	sweepInterval = time.Minute
)

// Server serves the JSON API and the live conversion socket.
type Server struct {
	cfg      am.ServerConfig
	store    *history.Store // nil when history is disabled
	logger   *zap.SugaredLogger
	limiter  *clientLimiter
	upgrader websocket.Upgrader

	// Lifecycle: ctx is cancelled on shutdown so websocket clients close,
	// wg tracks their goroutines.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a server. store may be nil; l may be nil for a silent server.
func New(cfg am.ServerConfig, store *history.Store, l *zap.SugaredLogger) *Server {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:     cfg,
		store:   store,
		logger:  l,
		limiter: newClientLimiter(cfg.RequestsPerSecond, cfg.Burst),
		ctx:     ctx,
		cancel:  cancel,
	}
	s.upgrader = s.newUpgrader()
	return s
}

// ListenAndServe listens on server.port and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.WithHint(
			errors.Wrapf(err, "failed to listen on %s", addr),
			"pick another port with --port or HIERO_SERVER_PORT",
		)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully: in-flight requests finish, websocket clients are closed.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		IdleTimeout:       IdleTimeout,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.sweepLimiter()
	}()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("Server listening",
			logger.FieldAddress, ln.Addr().String(),
			"rate_limited", s.limiter != nil,
			"history", s.store != nil,
		)
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		s.cancel()
		s.wg.Wait()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "server stopped")
	case <-ctx.Done():
	}

	s.logger.Infow("Shutting down server", "timeout", ShutdownTimeout)
	s.cancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "graceful shutdown failed")
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		s.logger.Warnw("Websocket clients did not close before timeout", "timeout", ShutdownTimeout)
	}

	s.logger.Infow("Server stopped")
	return nil
}

// Close releases websocket clients of a server used only through Handler.
func (s *Server) Close() {
	s.cancel()
	s.wg.Wait()
}

func (s *Server) sweepLimiter() {
	if s.limiter == nil {
		return
	}
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if n := s.limiter.sweep(); n > 0 {
				s.logger.Debugw("Dropped idle rate limit buckets", logger.FieldCount, n)
			}
		}
	}
}
