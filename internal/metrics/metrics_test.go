package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autistnet/internal/domain"
	"autistnet/internal/metrics"
)

func TestObserveOperation_LabelsByErrorKind(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveOperation("transfer_coins", nil)
	m.ObserveOperation("transfer_coins", domain.InsufficientFunds(10, 20))
	m.ObserveOperation("transfer_coins", domain.InsufficientFunds(10, 20))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations().WithLabelValues("transfer_coins", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Operations().WithLabelValues("transfer_coins", "insufficient_funds")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestObserveRelayRequest(t *testing.T) {
	m := metrics.New(nil)
	m.ObserveRelayRequest("/reports", 202)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RelayRequests().WithLabelValues("/reports", "202")))
}

func TestNilMetrics_NoPanic(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveOperation("create_post", nil)
		m.ObserveRelayRequest("/blocks", 500)
	})
}
