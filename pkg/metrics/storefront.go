package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records order placement and notification outcomes.
type StorefrontMetrics struct {
	ordersPlaced     *prometheus.CounterVec
	emailSends       *prometheus.CounterVec
	checkoutDuration *prometheus.HistogramVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	ordersPlaced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders accepted at checkout.",
	}, []string{"fulfillment"})
	emailSends := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_email_sends_total",
		Help: "Order notification email attempts by recipient and outcome.",
	}, []string{"recipient", "outcome"})
	checkoutDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"fulfillment"})
	reg.MustRegister(ordersPlaced, emailSends, checkoutDuration)
	return &StorefrontMetrics{
		ordersPlaced:     ordersPlaced,
		emailSends:       emailSends,
		checkoutDuration: checkoutDuration,
	}
}

// IncOrderPlaced increments the order counter for the fulfillment method.
func (m *StorefrontMetrics) IncOrderPlaced(fulfillment string) {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.WithLabelValues(normalizeLabel(fulfillment)).Inc()
}

// IncEmailSend records one email attempt for the given recipient kind.
func (m *StorefrontMetrics) IncEmailSend(recipient string, sent bool) {
	if m == nil || m.emailSends == nil {
		return
	}
	outcome := "failure"
	if sent {
		outcome = "success"
	}
	m.emailSends.WithLabelValues(normalizeLabel(recipient), outcome).Inc()
}

// ObserveCheckoutDuration records how long a checkout submission took.
func (m *StorefrontMetrics) ObserveCheckoutDuration(fulfillment string, duration time.Duration) {
	if m == nil || m.checkoutDuration == nil {
		return
	}
	m.checkoutDuration.WithLabelValues(normalizeLabel(fulfillment)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
