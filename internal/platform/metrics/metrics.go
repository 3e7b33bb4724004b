// Package metrics expone contadores Prometheus del gateway de eventos.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultApplied  = "applied"
	ResultRejected = "rejected"
	ResultFailed   = "persistence_failed"
)

// GatewayMetrics cuenta eventos aplicados y rollbacks por target (protocolo o weight).
type GatewayMetrics struct {
	EventsTotal    *prometheus.CounterVec
	RollbacksTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// New registra las métricas en un registry propio (no el global, para que los tests
// puedan crear varios routers en el mismo proceso).
func New() (*GatewayMetrics, error) {
	reg := prometheus.NewRegistry()
	m := &GatewayMetrics{
		EventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "milestones_events_total",
				Help: "Logged events received by the update gateway, by target and result",
			},
			[]string{"target", "result"},
		),
		RollbacksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "milestones_rollbacks_total",
				Help: "Optimistic updates reverted after a persistence failure, by target",
			},
			[]string{"target"},
		),
		registry: reg,
	}

	for _, c := range []prometheus.Collector{m.EventsTotal, m.RollbacksTotal} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register gateway metrics: %w", err)
		}
	}
	return m, nil
}

func (m *GatewayMetrics) EventApplied(target string) {
	m.EventsTotal.WithLabelValues(target, ResultApplied).Inc()
}

func (m *GatewayMetrics) EventRejected(target string) {
	m.EventsTotal.WithLabelValues(target, ResultRejected).Inc()
}

func (m *GatewayMetrics) RolledBack(target string) {
	m.EventsTotal.WithLabelValues(target, ResultFailed).Inc()
	m.RollbacksTotal.WithLabelValues(target).Inc()
}

func (m *GatewayMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.HTTPErrorOnError,
	})
}
