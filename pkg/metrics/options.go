package metrics

import "github.com/prometheus/client_golang/prometheus"

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the metrics namespace.
func WithNamespace(ns string) Option {
	return func(m *Manager) {
		if ns != "" {
			m.namespace = ns
		}
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(sub string) Option {
	return func(m *Manager) {
		if sub != "" {
			m.subsystem = sub
		}
	}
}

// WithHistogramBuckets overrides the default histogram buckets.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithPrometheusRegistry sets the registerer metrics attach to.
func WithPrometheusRegistry(r prometheus.Registerer) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}
