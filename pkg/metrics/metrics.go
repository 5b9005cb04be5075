package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records cart lifecycle outcomes.
type CheckoutMetrics struct {
	confirmed  prometheus.Counter
	rejected   prometheus.Counter
	orderTotal prometheus.Histogram
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	confirmed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pos_orders_confirmed_total",
		Help: "Carts confirmed into orders.",
	})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pos_carts_rejected_total",
		Help: "Carts rejected with stock restored.",
	})
	orderTotal := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pos_order_total_dollars",
		Help:    "Order totals at confirmation, in dollars.",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500},
	})
	reg.MustRegister(confirmed, rejected, orderTotal)
	return &CheckoutMetrics{
		confirmed:  confirmed,
		rejected:   rejected,
		orderTotal: orderTotal,
	}
}

// IncConfirmed counts a confirmed cart and observes its order total.
func (c *CheckoutMetrics) IncConfirmed(total float64) {
	if c == nil || c.confirmed == nil {
		return
	}
	c.confirmed.Inc()
	c.orderTotal.Observe(total)
}

// IncRejected counts a rejected cart.
func (c *CheckoutMetrics) IncRejected() {
	if c == nil || c.rejected == nil {
		return
	}
	c.rejected.Inc()
}
