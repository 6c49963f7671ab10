package api

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"palette-studio/internal/ui"
)

var (
	// MetricGeneratedTotal counts palettes generated by scheme
	MetricGeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palette_generated_total",
		Help: "Total palettes generated by scheme",
	}, []string{"scheme"})

	// MetricErrorsTotal counts rejected requests by kind
	MetricErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palette_errors_total",
		Help: "Total rejected palette requests by kind",
	}, []string{"kind"})

	// MetricRequestDuration tracks handler latency by route
	MetricRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "palette_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
	}, []string{"route"})

	// MetricLiveSessions tracks open live preview websockets
	MetricLiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "palette_live_sessions",
		Help: "Current live preview sessions",
	})

	// MetricRateLimited counts requests rejected by rate limiting
	MetricRateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "palette_rate_limited_total",
		Help: "Total requests rejected by rate limiting",
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
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
