package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Manager before its series are registered.
type Option func(*Manager)

// WithNames overrides the namespace and subsystem prefixed to every series.
// Empty values keep the defaults ("suwen", "web").
func WithNames(namespace, subsystem string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithConstLabel attaches a constant label, such as the service name, to every series.
func WithConstLabel(name, value string) Option {
	return func(m *Manager) {
		if name != "" && value != "" {
			m.constLabels[name] = value
		}
	}
}

// WithBuckets sets the millisecond buckets of the latency histograms.
func WithBuckets(buckets ...float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithMetricsEnabled toggles recording. Series are registered either way.
func WithMetricsEnabled(enabled bool) Option {
	return func(m *Manager) {
		m.enabled = enabled
	}
}

// WithPrometheusRegistry registers the series on registry instead of the default registerer.
func WithPrometheusRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}
