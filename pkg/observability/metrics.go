package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the plugin subsystem
type Metrics struct {
	// Plugin registry metrics
	PluginsLoaded   prometheus.Gauge
	CapabilityTypes prometheus.Gauge

	// Discovery metrics
	PluginLoadFailuresTotal *prometheus.CounterVec
	DiscoveryDuration       prometheus.Histogram
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		PluginsLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "netlens_plugins_loaded",
				Help: "Number of plugins currently registered",
			},
		),
		CapabilityTypes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "netlens_plugin_capability_types",
				Help: "Number of registered plugin capability types",
			},
		),
		PluginLoadFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netlens_plugin_load_failures_total",
				Help: "Total number of plugin candidates rejected during discovery",
			},
			[]string{"reason"},
		),
		DiscoveryDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "netlens_plugin_discovery_duration_seconds",
				Help:    "Plugin discovery duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	// Register all metrics
	registry.MustRegister(
		m.PluginsLoaded,
		m.CapabilityTypes,
		m.PluginLoadFailuresTotal,
		m.DiscoveryDuration,
	)

	return m
}

// MetricsHandler returns the handler serving the /metrics endpoint
func MetricsHandler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
