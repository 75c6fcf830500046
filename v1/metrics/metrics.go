package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// OpsCounter tracks replayed operations by policy and operation kind.
	OpsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evict_replay_ops_total",
		Help: "Total number of replayed cache operations",
	}, []string{"policy", "op"})
	// DiscardCounter tracks discard notices observed during replays.
	DiscardCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evict_replay_discards_total",
		Help: "Total number of discard notices observed during replays",
	}, []string{"policy"})
	// RunsGauge reports the number of replays currently running.
	RunsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "evict_replay_runs",
		Help: "Current number of running replays",
	})
)

// NewRegistry creates a new Prometheus registry.
func NewRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// RegisterReplayMetrics registers the replay metrics on the provided registry.
func RegisterReplayMetrics(reg prometheus.Registerer) {
	reg.MustRegister(OpsCounter, DiscardCounter, RunsGauge)
}
