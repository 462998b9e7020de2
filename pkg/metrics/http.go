package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request counts and latency per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests handled, by method, route and status.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)
	return &HTTPMetrics{
		requests: requests,
		duration: duration,
	}
}

// ObserveRequest records one handled request.
func (h *HTTPMetrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if h == nil || h.requests == nil {
		return
	}
	route = normalizeLabel(route)
	h.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	h.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// OrderMetrics tracks checkout submission outcomes.
type OrderMetrics struct {
	submitted       *prometheus.CounterVec
	paymentDeferred prometheus.Counter
	stockShortfall  prometheus.Counter
}

// NewOrderMetrics registers the order pipeline metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	submitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_submitted_total",
		Help: "Order submissions, by outcome.",
	}, []string{"outcome"})
	paymentDeferred := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_payment_deferred_total",
		Help: "Orders accepted with deferred payment after a gateway failure.",
	})
	stockShortfall := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_stock_shortfall_total",
		Help: "Orders flagged because stock ran short during decrement.",
	})
	reg.MustRegister(submitted, paymentDeferred, stockShortfall)
	return &OrderMetrics{
		submitted:       submitted,
		paymentDeferred: paymentDeferred,
		stockShortfall:  stockShortfall,
	}
}

// IncSubmitted increments the submission counter for the given outcome.
func (o *OrderMetrics) IncSubmitted(outcome string) {
	if o == nil || o.submitted == nil {
		return
	}
	o.submitted.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncPaymentDeferred increments the deferred payment counter.
func (o *OrderMetrics) IncPaymentDeferred() {
	if o == nil || o.paymentDeferred == nil {
		return
	}
	o.paymentDeferred.Inc()
}

// IncStockShortfall increments the stock shortfall counter.
func (o *OrderMetrics) IncStockShortfall() {
	if o == nil || o.stockShortfall == nil {
		return
	}
	o.stockShortfall.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
