package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"accessible-palette/internal/auth"
	"accessible-palette/internal/ui"
)

type ctxKey int

const requestIDKey ctxKey = iota

// RequestID returns the id assigned to the request by withRequestID
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// withRequestID keeps a well-formed incoming X-Request-ID or assigns a new one
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging logs every request and counts it by endpoint and status
func withLogging(endpoint string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		MetricRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(rec.status)).Inc()
		ui.LogRequest(RequestID(r.Context()), r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// withCORS sets CORS headers when an allowed origin is configured
func withCORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key, X-Request-ID")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withAuth requires a valid X-API-Key (or Bearer token) when keys are configured.
// Keys not yet verified cost a bcrypt comparison, so each client address gets
// a fixed budget of them.
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := apiKey(r)
		if s.keys.Enabled() && !s.keys.Verified(key) && !s.authLimiter.Allow(clientKey(r)) {
			s.stats.RecordRejected("auth_rate_limited")
			w.Header().Set("Retry-After", strconv.Itoa(authRetryAfter))
			writeError(w, http.StatusTooManyRequests, "rate_limited", "too many authentication attempts", nil)
			return
		}

		if err := s.keys.Verify(key); err != nil {
			s.stats.RecordRejected("unauthorized")
			if errors.Is(err, auth.ErrInvalidKey) {
				w.Header().Set("WWW-Authenticate", `Bearer realm="palette"`)
			}
			writeError(w, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit applies the per-client token bucket. It runs before withAuth
// so rejected keys are counted too.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(clientKey(r)) {
			s.stats.RecordRejected("rate_limited")
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withConcurrencyLimit rejects requests while every generation slot is busy
func (s *Server) withConcurrencyLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case s.sem <- struct{}{}:
			defer func() { <-s.sem }()
			next.ServeHTTP(w, r)
		default:
			s.stats.RecordRejected("capacity")
			ui.LogStatus("warning", "Request rejected: at max capacity ("+strconv.Itoa(cap(s.sem))+")")
			writeError(w, http.StatusServiceUnavailable, "capacity", "server at capacity, retry later", nil)
		}
	})
}

func apiKey(r *http.Request) string {
	if k := r.Header.Get("X-API-Key"); k != "" {
		return k
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// clientKey identifies a client for rate limiting by its remote IP. API keys
// are not used since an unverified key is free to rotate.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
