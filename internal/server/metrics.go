package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"accessible-palette/internal/ui"
)

var (
	// MetricRequestsTotal counts API requests by endpoint and status code
	MetricRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palette_requests_total",
		Help: "Total API requests by endpoint and status code",
	}, []string{"endpoint", "code"})

	// MetricInFlight tracks palette generations currently running
	MetricInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "palette_in_flight",
		Help: "Palette generations currently running",
	})

	// MetricGeneratedTotal counts successfully generated palettes
	MetricGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "palette_generated_total",
		Help: "Total palettes generated",
	})

	// MetricRateLimitClients tracks clients with a live rate-limit bucket
	MetricRateLimitClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "palette_rate_limit_clients",
		Help: "Clients currently tracked by the rate limiter",
	})

	// MetricShortfallsTotal counts pairs that missed the target ratio
	MetricShortfallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palette_shortfalls_total",
		Help: "Background/text pairs below the requested contrast ratio",
	}, []string{"tone"})

	// MetricErrorsTotal counts failed generations by kind
	MetricErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palette_errors_total",
		Help: "Total failed generations by kind",
	}, []string{"kind"})

	// MetricRejectedTotal counts requests turned away before generation
	MetricRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palette_rejected_total",
		Help: "Requests rejected by reason",
	}, []string{"reason"})

	// MetricGenerationDuration tracks time spent in palette.Generate
	MetricGenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "palette_generation_duration_seconds",
		Help:    "Palette generation duration in seconds",
		Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
	})
)

// MetricsServer wraps the HTTP server for prometheus metrics
type MetricsServer struct {
	server *http.Server
}

// NewMetricsServer creates a new metrics server
func NewMetricsServer(addr string) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &MetricsServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start begins serving metrics (non-blocking)
func (m *MetricsServer) Start() {
	go func() {
		if err := m.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ui.LogStatus("error", "Metrics server error: "+err.Error())
		}
	}()
}

// Shutdown gracefully stops the metrics server
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.server.Shutdown(shutdownCtx)
}
