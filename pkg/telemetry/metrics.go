// Package telemetry exports focus navigation metrics to Prometheus and
// navigation spans to OpenTelemetry.
package telemetry

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/odvcencio/wayfinder/pkg/logging"
	"github.com/odvcencio/wayfinder/pkg/ui/runtime"
)

const namespace = "wayfinder"

// Metrics records navigation outcomes. It implements
// runtime.NavigationObserver.
type Metrics struct {
	navigations *prometheus.CounterVec
	transfers   prometheus.Counter
	latency     prometheus.Histogram
	reloads     *prometheus.CounterVec
}

// NewMetrics registers the wayfinder collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "focus_navigations_total",
			Help:      "Focus navigation requests by direction and outcome.",
		}, []string{"direction", "outcome"}),
		transfers: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "focus_transfers_total",
			Help:      "Navigations that moved focus to a different widget.",
		}),
		latency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "focus_resolve_seconds",
			Help:      "Time spent resolving a navigation target.",
			Buckets:   []float64{1e-6, 1e-5, 1e-4, 1e-3, 1e-2},
		}),
		reloads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scene_reloads_total",
			Help:      "Scene file reloads by result.",
		}, []string{"result"}),
	}
}

// Navigated implements runtime.NavigationObserver.
func (m *Metrics) Navigated(nav runtime.Navigation) {
	outcome := nav.Outcome()
	m.navigations.WithLabelValues(nav.Direction.String(), outcome).Inc()
	if outcome == "moved" {
		m.transfers.Inc()
	}
	m.latency.Observe(nav.Duration.Seconds())
}

// SceneReloaded counts a scene reload attempt.
func (m *Metrics) SceneReloaded(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.reloads.WithLabelValues(result).Inc()
}

var _ runtime.NavigationObserver = (*Metrics)(nil)

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer, logger *logging.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return ServeListener(ctx, ln, g, logger)
}

// ServeListener exposes /metrics on ln until ctx is done.
func ServeListener(ctx context.Context, ln net.Listener, g prometheus.Gatherer, logger *logging.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(g))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info(logging.CategoryTelemetry, "metrics_listen", "serving metrics", map[string]any{
		"addr": ln.Addr().String(),
	})

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
