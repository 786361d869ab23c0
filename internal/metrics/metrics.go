// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tabledine"

// Registry is the registry every tabledine collector is registered with.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// CartActions counts cart actions applied, by action name.
	CartActions = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_actions_total",
		Help:      "Cart actions applied, by action.",
	}, []string{"action"})

	// RPCRequests counts handled RPCs by procedure and Connect code.
	RPCRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rpc_requests_total",
		Help:      "RPCs handled, by procedure and result code.",
	}, []string{"procedure", "code"})

	RPCDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_duration_seconds",
		Help:      "RPC handling latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})

	// OrdersPlaced counts checkouts per restaurant.
	OrdersPlaced = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_total",
		Help:      "Orders placed, by restaurant.",
	}, []string{"restaurant"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
