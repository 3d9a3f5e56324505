package core

import "github.com/prometheus/client_golang/prometheus"

// Transport counters. Registered on the default registry so a scrape
// endpoint in the embedding application picks them up with no extra wiring.
var (
	rpcRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hivenet",
		Subsystem: "rpc",
		Name:      "requests_total",
		Help:      "JSON-RPC requests attempted, per node.",
	}, []string{"node"})

	rpcFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hivenet",
		Subsystem: "rpc",
		Name:      "transport_failures_total",
		Help:      "Transport-level failures (connect, HTTP status, timeout, bad body), per node.",
	}, []string{"node"})

	rpcFailoversTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hivenet",
		Subsystem: "rpc",
		Name:      "failovers_total",
		Help:      "Times the sticky node index advanced to the next node.",
	})
)

func init() {
	prometheus.MustRegister(rpcRequestsTotal, rpcFailuresTotal, rpcFailoversTotal)
}
