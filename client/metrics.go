package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "obzr_client",
			Name:      "requests_total",
			Help:      "Outbound API requests by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	authRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "obzr_client",
			Name:      "auth_rejections_total",
			Help:      "Responses with HTTP 401 that cleared the credential.",
		},
	)
)
