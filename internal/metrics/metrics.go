// Package metrics holds the prometheus collectors of the wallet. All methods are safe to call on a nil *Metrics, in
// which case nothing is recorded.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "zwallet"

type Metrics struct {
	signatures    prometheus.Counter
	verifications *prometheus.CounterVec
	nodeRequests  *prometheus.CounterVec
}

// New creates the wallet collectors and registers them with the given registerer.
func New(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		signatures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signatures_total",
			Help:      "Number of signatures produced.",
		}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Number of signature verifications, partitioned by result.",
		}, []string{"result"}),
		nodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "node_requests_total",
			Help:      "Number of requests sent to the ledger node, partitioned by endpoint and HTTP status.",
		}, []string{"endpoint", "status"}),
	}

	for _, c := range []prometheus.Collector{m.signatures, m.verifications, m.nodeRequests} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) SignatureCreated() {
	if m == nil {
		return
	}
	m.signatures.Inc()
}

func (m *Metrics) Verified(valid bool) {
	if m == nil {
		return
	}
	result := "invalid"
	if valid {
		result = "valid"
	}
	m.verifications.WithLabelValues(result).Inc()
}

// NodeRequest records a request to the node. A status of 0 denotes a transport error.
func (m *Metrics) NodeRequest(endpoint string, status int) {
	if m == nil {
		return
	}
	m.nodeRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}
