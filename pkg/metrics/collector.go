package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/txlens/base-tx-analyzer/pkg/types"
)

// Collector exposes analysis pipeline counters and latencies to Prometheus
type Collector struct {
	classifications *prometheus.CounterVec
	decodedEvents   *prometheus.CounterVec
	rpcLatency      *prometheus.HistogramVec
	analysisErrors  *prometheus.CounterVec
}

// NewCollector registers the analyzer metrics with the given registerer.
// Pass nil to use the default registerer.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		classifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "analyzer_classifications_total",
			Help: "Transactions classified, labeled by assigned category",
		}, []string{"category"}),
		decodedEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "analyzer_decoded_events_total",
			Help: "Decoded log events, labeled by event kind",
		}, []string{"kind"}),
		rpcLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "analyzer_rpc_latency_seconds",
			Help:    "Latency of upstream JSON-RPC calls",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		analysisErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "analyzer_errors_total",
			Help: "Analysis failures, labeled by pipeline stage",
		}, []string{"stage"}),
	}
}

// RecordClassification counts one classification outcome
func (c *Collector) RecordClassification(category types.Category) {
	c.classifications.WithLabelValues(string(category)).Inc()
}

// RecordDecodedEvent counts one decoded log by kind
func (c *Collector) RecordDecodedEvent(kind types.EventKind) {
	c.decodedEvents.WithLabelValues(string(kind)).Inc()
}

// RecordRPCLatency observes the duration of one upstream RPC call
func (c *Collector) RecordRPCLatency(operation string, d time.Duration) {
	c.rpcLatency.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordAnalysisError counts one failure at the given pipeline stage
func (c *Collector) RecordAnalysisError(stage string) {
	c.analysisErrors.WithLabelValues(stage).Inc()
}
