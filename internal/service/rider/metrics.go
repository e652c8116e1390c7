package rider

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var AvailabilityChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dispatch_rider_availability_changes_total",
		Help: "Total number of rider availability toggles by resulting availability",
	},
	[]string{"availability"},
)
