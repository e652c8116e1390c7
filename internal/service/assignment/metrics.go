package assignment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AcceptTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_accept_total",
			Help: "Total number of offer acceptance attempts by result",
		},
		[]string{"result"},
	)

	OffersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_offers_created_total",
			Help: "Total number of offers made to riders",
		},
	)

	OffersExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_offers_expired_total",
			Help: "Total number of offers expired without acceptance",
		},
	)
)
