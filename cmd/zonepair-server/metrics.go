package main

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the Prometheus collectors for the API server.
type metrics struct {
	RequestsTotal    *prometheus.CounterVec // labels: handler, outcome={ok,bad_request,not_found,rate_limited}
	ConversionsTotal prometheus.Counter
	GeoResolves      *prometheus.CounterVec // labels: outcome={ok,not_found,error}
}

// newMetrics creates the server metrics and registers them with reg.
// Tests pass a private registry so servers can be built independently.
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zonepair",
			Name:      "requests_total",
			Help:      "API requests by handler and outcome.",
		}, []string{"handler", "outcome"}),
		ConversionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "zonepair",
			Name:      "conversions_total",
			Help:      "Successful wall-clock conversions served.",
		}),
		GeoResolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zonepair",
			Name:      "geo_resolves_total",
			Help:      "Coordinate-to-timezone resolutions by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(m.RequestsTotal, m.ConversionsTotal, m.GeoResolves)
	return m
}
