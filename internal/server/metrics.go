package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "quizroom_http_requests_total",
		Help: "HTTP requests processed, labeled by method, route pattern, and status.",
	},
	[]string{"method", "route", "status"},
)
