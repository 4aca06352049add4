// Package metrics holds the Prometheus collectors shared by the feed store
// and the moderation relay.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"autistnet/internal/domain"
)

const namespace = "autistnet"

// Metrics counts store operations and relay requests. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	operations    *prometheus.CounterVec
	relayRequests *prometheus.CounterVec
}

// New creates the collectors and registers them with reg when reg is non-nil.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "operations_total",
			Help:      "Feed store operations by name and result kind.",
		}, []string{"operation", "result"}),
		relayRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "relay",
			Name:      "requests_total",
			Help:      "Moderation relay requests by endpoint and status code.",
		}, []string{"endpoint", "code"}),
	}
	if reg != nil {
		reg.MustRegister(m.operations, m.relayRequests)
	}
	return m
}

// ObserveOperation counts one store operation, labelled with the error kind.
func (m *Metrics) ObserveOperation(op string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, domain.KindOf(err)).Inc()
}

// ObserveRelayRequest counts one relay request.
func (m *Metrics) ObserveRelayRequest(endpoint string, code int) {
	if m == nil {
		return
	}
	m.relayRequests.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
}

// Operations exposes the operation counter, mainly for tests.
func (m *Metrics) Operations() *prometheus.CounterVec { return m.operations }

// RelayRequests exposes the relay request counter, mainly for tests.
func (m *Metrics) RelayRequests() *prometheus.CounterVec { return m.relayRequests }
