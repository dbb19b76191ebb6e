package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	checkouts       *prometheus.CounterVec
	cartMutations   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vibeshop",
		Name:      "checkouts_total",
		Help:      "Checkout attempts by outcome.",
	}, []string{"outcome"})
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vibeshop",
		Name:      "cart_mutations_total",
		Help:      "Cart mutations by operation.",
	}, []string{"op"})
	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "vibeshop",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	}, []string{"path"})

	prometheus.MustRegister(checkouts, cartMutations, requestDuration)
	return &Metrics{
		checkouts:       checkouts,
		cartMutations:   cartMutations,
		requestDuration: requestDuration,
	}
}

// The observers tolerate a nil receiver so handlers and tests can run
// without a registry.

func (m *Metrics) CheckoutOutcome(outcome string) {
	if m == nil {
		return
	}
	m.checkouts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) CartMutation(op string) {
	if m == nil {
		return
	}
	m.cartMutations.WithLabelValues(op).Inc()
}

func (m *Metrics) ObserveRequest(path string, d time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(path).Observe(float64(d.Milliseconds()))
}

func Handler() http.Handler {
	return promhttp.Handler()
}
