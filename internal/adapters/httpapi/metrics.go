package httpapi

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/ribbon/pkg/machine"
)

// metrics aggregates counters across every session the server hosts. The
// registry is private so two servers in one process never fight over
// collector names.
type metrics struct {
	registry *prometheus.Registry

	sessionsCreated prometheus.Counter
	microSteps      prometheus.Counter
	halts           *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		sessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ribbon_sessions_created_total",
			Help: "Total number of sessions created",
		}),
		microSteps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ribbon_micro_steps_total",
			Help: "Total number of engine micro-steps across all sessions",
		}),
		halts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ribbon_halts_total",
			Help: "Total number of halted runs by terminal phase",
		}, []string{"phase"}),
	}
	m.registry.MustRegister(m.sessionsCreated, m.microSteps, m.halts)
	return m
}

// hooks exposes the counters as engine hooks, so they merge with each
// session's own collector.
func (m *metrics) hooks() machine.Hooks {
	return machine.Hooks{
		OnPhase: func(_ context.Context, _ *machine.StepEvent) {
			m.microSteps.Inc()
		},
		OnHalt: func(_ context.Context, event *machine.StepEvent) {
			m.halts.WithLabelValues(string(event.Phase)).Inc()
		},
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
