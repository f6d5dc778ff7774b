package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

const (
	StatusOK      = "ok"
	StatusFailure = "failure"
)

// Metrics tracks the conversions of one process on its own registry.
type Metrics struct {
	mutex      *sync.RWMutex
	registry   *prometheus.Registry
	prometheus Prometheus
}

// New creates the conversion metrics.
func New() *Metrics {
	p := NewPrometheusMetrics()
	registry := prometheus.NewRegistry()
	registry.MustRegister(p.collectors()...)
	return &Metrics{
		mutex:      new(sync.RWMutex),
		registry:   registry,
		prometheus: p,
	}
}

// Success records a completed conversion with the shape of the converted model.
func (m *Metrics) Success(classes, supportVectors, features, functions int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.prometheus.Conversions.WithLabelValues(StatusOK).Inc()
	m.prometheus.Classes.Set(float64(classes))
	m.prometheus.SupportVectors.Set(float64(supportVectors))
	m.prometheus.Features.Set(float64(features))
	m.prometheus.DecisionFunctions.Set(float64(functions))
}

// Failure records an aborted conversion.
func (m *Metrics) Failure() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.prometheus.Conversions.WithLabelValues(StatusFailure).Inc()
}

// Gatherer exposes the registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTo writes the metrics in the text exposition format to the given file,
// to be picked up by the node exporter textfile collector.
func (m *Metrics) WriteTo(path string) error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("could not write metrics to '%s': %w", path, err)
	}
	log.Debug().Str("path", path).Msg("stored metrics")
	return nil
}
