package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	BytesServedTotal prometheus.Counter
}

// NewMetrics registers the server metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "certassets_requests_total",
				Help: "Asset requests by response status",
			},
			[]string{"status"},
		),
		BytesServedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "certassets_bytes_served_total",
				Help: "Total asset body bytes written",
			},
		),
	}
}

// MetricsHandler exposes the metrics gathered by g.
func MetricsHandler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
