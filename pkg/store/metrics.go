package store

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Requests       *prometheus.CounterVec
	DroppedReplies prometheus.Counter
	Panics         prometheus.Counter
	Entries        prometheus.Gauge
	QueueLength    prometheus.Gauge
}

func NewMetrics() *Metrics {
	return &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kvstore",
			Subsystem: "store",
			Name:      "requests_total",
			Help:      "Number of requests processed by the store",
		}, []string{"op"}),

		DroppedReplies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kvstore",
			Subsystem: "store",
			Name:      "dropped_replies_total",
			Help:      "Number of replies which could not be delivered",
		}),

		Panics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kvstore",
			Subsystem: "store",
			Name:      "panics_total",
			Help:      "Number of panics recovered while processing requests",
		}),

		Entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kvstore",
			Subsystem: "store",
			Name:      "entries",
			Help:      "Number of entries in the store",
		}),

		QueueLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kvstore",
			Subsystem: "store",
			Name:      "queue_length",
			Help:      "Number of requests waiting to be processed",
		}),
	}
}

func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Requests,
		m.DroppedReplies,
		m.Panics,
		m.Entries,
		m.QueueLength,
	}
}

func (m *Metrics) Register(r prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := r.Register(c); err != nil {
			return fmt.Errorf("cannot register collector: %w", err)
		}
	}

	return nil
}
