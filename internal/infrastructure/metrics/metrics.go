package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

func NewServerMetrics() *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ordersvc",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ordersvc",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})

	prometheus.MustRegister(requests, latency)
	return &ServerMetrics{Requests: requests, LatencyMS: latency}
}

type SweepMetrics struct {
	Sweeps         prometheus.Counter
	PromotedOrders prometheus.Counter
}

func NewSweepMetrics() *SweepMetrics {
	sweeps := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ordersvc",
		Name:      "promotion_sweeps_total",
		Help:      "Total number of status promotion sweeps run.",
	})
	promoted := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ordersvc",
		Name:      "promoted_orders_total",
		Help:      "Total number of orders promoted from pending to processing.",
	})

	prometheus.MustRegister(sweeps, promoted)
	return &SweepMetrics{Sweeps: sweeps, PromotedOrders: promoted}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
