// Package metrics expone los contadores Prometheus del servicio: tráfico
// HTTP por ruta y resultado de las corridas de sincronización.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/javierdrios/Socorro-api/internal/application/syncer"
)

var _ syncer.Metrics = (*Metrics)(nil)

// Metrics agrupa los colectores del servicio sobre un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	syncRuns     *prometheus.CounterVec
}

// New construye el registry con los colectores de runtime y del servicio.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "socorro",
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por método, ruta y código de estado.",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "socorro",
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		syncRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "socorro",
			Name:      "sync_runs_total",
			Help:      "Corridas de sincronización por resultado (ok, error, skipped).",
		}, []string{"outcome"}),
	}
}

// ObserveHTTP registra una petición atendida.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// IncSyncRun cuenta una corrida de sincronización.
func (m *Metrics) IncSyncRun(outcome string) {
	m.syncRuns.WithLabelValues(outcome).Inc()
}

// Handler expone el registry en formato de exposición Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
