package pubsub

import "github.com/prometheus/client_golang/prometheus"

const metricsNamespace = "walletd"

type metrics struct {
	eventsDispatched *prometheus.CounterVec
	handlerFailures  *prometheus.CounterVec
	webhookFailures  *prometheus.CounterVec
}

func newMetrics() *metrics {
	return &metrics{
		eventsDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "events",
			Name:      "dispatched_total",
			Help:      "Number of events dispatched by type.",
		}, []string{"type"}),
		handlerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "events",
			Name:      "handler_failures_total",
			Help:      "Number of events an in-process handler failed to process.",
		}, []string{"type"}),
		webhookFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "events",
			Name:      "webhook_failures_total",
			Help:      "Number of events whose webhook notification failed.",
		}, []string{"type"}),
	}
}

func (m *metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.eventsDispatched, m.handlerFailures, m.webhookFailures,
	}
}
