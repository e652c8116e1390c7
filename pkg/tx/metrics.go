package tx

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var TxRetriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "tx_serialization_retries_total",
		Help: "Total number of transactions restarted after a serialization failure",
	},
)
