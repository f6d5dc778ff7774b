package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "svm2cv"

type Prometheus struct {
	Conversions       *prometheus.CounterVec
	SupportVectors    prometheus.Gauge
	DecisionFunctions prometheus.Gauge
	Features          prometheus.Gauge
	Classes           prometheus.Gauge
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "conversions_total",
				Help:      "Model conversions by outcome.",
			}, []string{"status"}),
		SupportVectors: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "support_vectors",
			Help:      "Support vectors of the last converted model.",
		}),
		DecisionFunctions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "decision_functions",
			Help:      "One-vs-one decision functions of the last converted model.",
		}),
		Features: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "features",
			Help:      "Dense feature width of the last converted model.",
		}),
		Classes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "classes",
			Help:      "Classes of the last converted model.",
		}),
	}
}

func (p Prometheus) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		p.Conversions,
		p.SupportVectors,
		p.DecisionFunctions,
		p.Features,
		p.Classes,
	}
}
