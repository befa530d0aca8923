package v1

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the Prometheus collectors updated by the v1 controllers.
var Metrics = []prometheus.Collector{
	allocationsCreated,
	allocatedAmount,
}

var allocationsCreated = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "allocations_created_total",
		Help: "How many allocations were created.",
	},
)

var allocatedAmount = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "allocated_amount_total",
		Help: "The sum of all source amounts of created allocations, in the smallest currency unit.",
	},
)
