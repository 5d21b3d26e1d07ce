package headerchain

import (
	"sync"

	"github.com/bsv-blockchain/spvchain/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusHeaderChainAccepted  prometheus.Counter
	prometheusHeaderChainRejected  *prometheus.CounterVec
	prometheusHeaderChainTipHeight prometheus.Gauge
	prometheusHeaderChainAccept    prometheus.Histogram
	prometheusHeaderChainOrphans   prometheus.Gauge
)

var (
	prometheusMetricsInitOnce sync.Once
)

// initPrometheusMetrics registers the collectors once per process, however
// many header chains are created.
func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusHeaderChainAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "spv",
			Subsystem: "headerchain",
			Name:      "accepted",
			Help:      "Number of headers accepted into the header chain",
		},
	)

	prometheusHeaderChainRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spv",
			Subsystem: "headerchain",
			Name:      "rejected",
			Help:      "Number of headers rejected, by error code",
		},
		[]string{"code"},
	)

	prometheusHeaderChainTipHeight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "spv",
			Subsystem: "headerchain",
			Name:      "tip_height",
			Help:      "Height of the best header",
		},
	)

	prometheusHeaderChainOrphans = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "spv",
			Subsystem: "headerchain",
			Name:      "orphans",
			Help:      "Number of pooled headers waiting for their parent",
		},
	)

	prometheusHeaderChainAccept = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "spv",
			Subsystem: "headerchain",
			Name:      "accept",
			Help:      "Histogram of header accept calls",
			Buckets:   util.MetricsBucketsMicroSeconds,
		},
	)
}
