package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the posting ledger core. Consumers
// take a *Metrics and tolerate nil, so pure-library callers pay nothing.
type Metrics struct {
	// --- Client transaction indexing ---
	InstructionsIndexed *prometheus.CounterVec
	ChainsIndexed       prometheus.Counter
	ChainErrors         *prometheus.CounterVec
	ChainLength         prometheus.Histogram

	// --- Windowed netting ---
	NettingComputations *prometheus.CounterVec
	NettingDuration     *prometheus.HistogramVec
	DebitsExtracted     prometheus.Counter
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	computeBuckets := []float64{
		0.000001, 0.000005, 0.00001, 0.000025, 0.00005,
		0.0001, 0.00025, 0.0005, 0.001, 0.002, 0.005, 0.01,
	}

	return &Metrics{
		InstructionsIndexed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_instructions_indexed_total",
			Help: "Posting instructions indexed into client transactions",
		}, []string{"instruction_type"}),

		ChainsIndexed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_chains_indexed_total",
			Help: "Client transactions built by batch indexing",
		}),

		ChainErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_chain_errors_total",
			Help: "Chain-sequencing violations",
		}, []string{"instruction_type"}),

		ChainLength: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_chain_length",
			Help:    "Instructions per client transaction",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		}),

		NettingComputations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_netting_computations_total",
			Help: "Windowed netting engine invocations",
		}, []string{"operation"}),

		NettingDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledger_netting_duration_seconds",
			Help:    "Windowed netting computation time",
			Buckets: computeBuckets,
		}, []string{"operation"}),

		DebitsExtracted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_debits_extracted_total",
			Help: "Instructions returned by debit extraction",
		}),
	}
}
