package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"palette-studio/internal/auth"
	"palette-studio/internal/config"
	"palette-studio/internal/ui"
)

// Server serves the palette API and the live preview websocket.
type Server struct {
	Config *config.Config
	// Keys is nil when API key authentication is disabled.
	Keys *auth.KeyStore
	Log  *logrus.Logger

	Stats   *StatsTracker
	limiter *auth.RateLimiter
	trusted []*net.IPNet

	httpServer *http.Server
	ln         net.Listener
	lnReady    chan struct{}

	upgrader     websocket.Upgrader
	liveCount    atomic.Int64
	liveMu       sync.Mutex
	liveSessions map[*websocket.Conn]struct{}
}

// NewServer creates a palette API server.
func NewServer(cfg *config.Config, keys *auth.KeyStore, log *logrus.Logger) *Server {
	s := &Server{
		Config:       cfg,
		Keys:         keys,
		Log:          log,
		Stats:        NewStatsTracker(),
		limiter:      auth.NewRateLimiter(),
		lnReady:      make(chan struct{}),
		liveSessions: make(map[*websocket.Conn]struct{}),
	}
	trusted, err := auth.ParseNetworks(cfg.TrustedProxies)
	if err != nil {
		log.WithError(err).Warn("ignoring trusted_proxies; proxy headers will not be honored")
	}
	s.trusted = trusted

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// Handler returns the full HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.Handle("GET /api/palette", s.instrument("palette", s.handlePalette))
	api.Handle("GET /api/palettes", s.instrument("palettes", s.handlePalettes))
	api.Handle("GET /api/schemes", s.instrument("schemes", s.handleSchemes))
	api.Handle("GET /api/stats", s.instrument("stats", s.handleStats))
	api.Handle("GET /ws/palette", s.instrument("live", s.handleLive))

	root := http.NewServeMux()
	root.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	root.Handle("/", s.guard(api))

	return s.withAccessLog(s.withCORS(root))
}

// Start listens on Config.Listen and serves until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	var err error
	s.ln, err = net.Listen("tcp", s.Config.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Config.Listen, err)
	}
	close(s.lnReady)

	timeout := time.Duration(s.Config.TimeoutSec) * time.Second
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
		IdleTimeout:       120 * time.Second,
	}

	ui.LogStatus("info", "Palette API listening on "+s.ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(s.ln)
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.closeLiveSessions()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	<-errCh
	return nil
}

// Addr blocks until the listener is bound and returns its address.
func (s *Server) Addr() net.Addr {
	<-s.lnReady
	return s.ln.Addr()
}

// LiveSessions returns the number of open live preview connections.
func (s *Server) LiveSessions() int64 {
	return s.liveCount.Load()
}

func (s *Server) checkOrigin(r *http.Request) bool {
	allowed := s.Config.Env.AllowedOrigin
	origin := r.Header.Get("Origin")
	return allowed == "" || allowed == "*" || origin == "" || origin == allowed
}
