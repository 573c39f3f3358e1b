// Package metrics holds the Prometheus counters for front-end serving.
package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Registry = prom.NewRegistry()

	SPAFallbacks = prom.NewCounter(prom.CounterOpts{
		Namespace: "spaboot",
		Name:      "spa_fallback_total",
		Help:      "Unmatched requests answered with the index document",
	})
	DevPageRenders = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "spaboot",
		Name:      "dev_page_renders_total",
		Help:      "Dev index document renders by result",
	}, []string{"result"})
	DevProxyRequests = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "spaboot",
		Name:      "dev_proxy_requests_total",
		Help:      "Requests forwarded to the dev build tool by result",
	}, []string{"result"})
	HMRConnections = prom.NewCounter(prom.CounterOpts{
		Namespace: "spaboot",
		Name:      "hmr_connections_total",
		Help:      "Hot-reload websocket connections bridged to the dev build tool",
	})
)

func init() {
	Registry.MustRegister(SPAFallbacks, DevPageRenders, DevProxyRequests, HMRConnections)
}

// Handler serves the package registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
