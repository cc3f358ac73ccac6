// Package server exposes palette generation over HTTP.
package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"accessible-palette/internal/auth"
	"accessible-palette/internal/config"
	"accessible-palette/internal/ui"
)

const (
	drainTimeout  = 30 * time.Second
	pruneInterval = time.Minute

	// authAttemptsRPM bounds unverified API keys per client address,
	// independent of rate_limit_rpm (burst of 10)
	authAttemptsRPM = 30
	authRetryAfter  = 2 // seconds per refilled attempt
)

// ErrServerStarted is returned by a second call to Start.
var ErrServerStarted = errors.New("server already started")

// Server serves the palette API.
type Server struct {
	Config *config.Config

	keys        *auth.KeyStore
	limiter     *auth.RateLimiter
	authLimiter *auth.RateLimiter
	stats       *StatsTracker
	sem         chan struct{} // one slot per concurrent generation

	started atomic.Bool
	ln      net.Listener
	httpSrv *http.Server
	ready   chan struct{}

	// Certificate management for hot-reloading
	mu   sync.RWMutex
	cert *tls.Certificate
}

// NewServer creates a new palette server with the given configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	keys, err := auth.NewKeyStore(cfg.APIKeyHashes)
	if err != nil {
		return nil, err
	}
	if cfg.Env == nil {
		cfg.Env = config.LoadEnv()
	}

	return &Server{
		Config:      cfg,
		keys:        keys,
		limiter:     auth.NewRateLimiter(cfg.RateLimitRPM),
		authLimiter: auth.NewRateLimiter(authAttemptsRPM),
		stats:       NewStatsTracker(),
		sem:         make(chan struct{}, cfg.MaxConcurrent),
		ready:       make(chan struct{}),
	}, nil
}

// Handler returns the API routes with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	api := func(endpoint string, h http.Handler) {
		mux.Handle(endpoint, withLogging(endpoint, withCORS(s.Config.Env.AllowedOrigin, h)))
	}
	api("/api/palette", s.withRateLimit(s.withAuth(s.withConcurrencyLimit(http.HandlerFunc(s.handlePalette)))))
	api("/api/stats", s.withRateLimit(s.withAuth(s.stats)))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok\n"))
	})

	return withRequestID(mux)
}

// Stats returns the server's statistics tracker.
func (s *Server) Stats() *StatsTracker {
	return s.stats
}

// Reload reloads the TLS certificate from disk. It is a no-op when TLS is
// not configured.
func (s *Server) Reload() error {
	if s.Config.CertFile == "" {
		return nil
	}
	cert, err := tls.LoadX509KeyPair(s.Config.CertFile, s.Config.KeyFile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cert = &cert
	s.mu.Unlock()

	ui.LogStatus("success", "Certificates reloaded from disk")
	return nil
}

// getCertificate returns the current certificate for TLS handshakes.
func (s *Server) getCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cert, nil
}

// Ready is closed once the listener is accepting connections.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the listening address. Only valid after Ready is closed.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Start begins serving. It blocks until ctx is cancelled or the server
// fails; on cancellation in-flight requests get up to 30s to finish.
// A Server can be started once.
func (s *Server) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrServerStarted
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := s.Reload(); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", s.Config.Listen)
	if err != nil {
		return err
	}
	scheme := "http"
	if s.Config.CertFile != "" {
		ln = tls.NewListener(ln, &tls.Config{
			GetCertificate: s.getCertificate,
			MinVersion:     tls.VersionTLS12,
		})
		scheme = "https"
	}
	s.ln = ln

	timeout := time.Duration(s.Config.TimeoutSec) * time.Second
	s.httpSrv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.Serve(ln)
	}()
	close(s.ready)
	ui.LogStatus("success", fmt.Sprintf("Palette API: %s://%s/api/palette", scheme, ln.Addr()))

	go s.pruneLoop(ctx)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	ui.LogGracefulShutdown()
	return s.drain()
}

// drain stops accepting and waits for active requests (with timeout).
func (s *Server) drain() error {
	if n := s.stats.inFlight.Load(); n > 0 {
		ui.LogStatus("info", fmt.Sprintf("Draining %d in-flight requests (%s timeout)...", n, drainTimeout))
	}

	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	if err := s.httpSrv.Shutdown(ctx); err != nil {
		ui.LogStatus("warning", "Drain timeout reached. Forcing shutdown.")
		s.httpSrv.Close()
		return err
	}
	ui.LogStatus("success", "All requests drained. Goodbye.")
	return nil
}

// pruneLoop forgets idle rate-limit buckets until ctx is done.
func (s *Server) pruneLoop(ctx context.Context) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.prune(10 * time.Minute)
		}
	}
}

func (s *Server) prune(idle time.Duration) {
	if n := s.limiter.Prune(idle) + s.authLimiter.Prune(idle); n > 0 {
		ui.LogStatus("debug", fmt.Sprintf("Pruned %d idle rate-limit buckets", n))
	}
	MetricRateLimitClients.Set(float64(s.limiter.Clients()))
}
