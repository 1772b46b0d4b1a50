package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cpamm"

type metrics struct {
	instructions *prometheus.CounterVec
	transfers    *prometheus.CounterVec
}

// newMetrics registers the ledger counters with reg. A nil reg leaves
// them unregistered.
func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		instructions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "instructions_total",
			Help:      "Instructions executed by the ledger by name and result",
		}, []string{"instruction", "result"}),
		transfers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfers_total",
			Help:      "Committed token program calls by kind",
		}, []string{"kind"}),
	}
}

// transfer kinds
const (
	kindWallet = "wallet"
	kindPDA    = "pda"
	kindBurn   = "burn"
)
