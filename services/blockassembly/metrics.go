package blockassembly

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusCandidatesRejected   prometheus.Counter
	prometheusTransactionsSelected prometheus.Counter
)

var (
	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusCandidatesRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "blockminer",
			Subsystem: "blockassembly",
			Name:      "candidates_rejected",
			Help:      "Number of mempool candidates rejected before selection",
		},
	)

	prometheusTransactionsSelected = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "blockminer",
			Subsystem: "blockassembly",
			Name:      "transactions_selected",
			Help:      "Number of transactions selected into blocks",
		},
	)
}
