package testimplementations

import "github.com/prometheus/client_golang/prometheus"

var _ prometheus.Registerer = TestMetricsRegisterer{}

// TestMetricsRegisterer accepts and drops every collector, so that tests may create metrics repeatedly.
type TestMetricsRegisterer struct{}

func (TestMetricsRegisterer) Register(prometheus.Collector) error {
	return nil
}

func (TestMetricsRegisterer) MustRegister(...prometheus.Collector) {}

func (TestMetricsRegisterer) Unregister(prometheus.Collector) bool {
	return true
}
