package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ziesha-network/zwallet/internal/testimplementations"
)

func TestMetricsCounters(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.SignatureCreated()
	m.SignatureCreated()
	m.Verified(true)
	m.Verified(false)
	m.Verified(false)
	m.NodeRequest("/mempool", 200)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.signatures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.verifications.WithLabelValues("valid")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.verifications.WithLabelValues("invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.nodeRequests.WithLabelValues("/mempool", "200")))
}

func TestMetricsDuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := New(registry)
	require.NoError(t, err)
	_, err = New(registry)
	require.Error(t, err)
}

func TestMetricsNoopRegisterer(t *testing.T) {
	m, err := New(testimplementations.TestMetricsRegisterer{})
	require.NoError(t, err)
	m.Verified(true)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SignatureCreated()
		m.Verified(false)
		m.NodeRequest("/token", 0)
	})
}
