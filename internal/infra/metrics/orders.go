package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		ordersTotal,
		orderAmountTotal,
	)
}

var (
	ordersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_orders_total",
			Help: "Order creation attempts by outcome (created/replayed/rejected/failed).",
		},
		[]string{"outcome"},
	)

	orderAmountTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_order_amount_total",
			Help: "Total amount of created orders in minor units, labeled by currency.",
		},
		[]string{"currency"},
	)
)

func IncOrder(outcome string) {
	ordersTotal.WithLabelValues(norm(outcome)).Inc()
}

func AddOrderAmount(currency string, amountMinor int64) {
	orderAmountTotal.WithLabelValues(norm(currency)).Add(float64(amountMinor))
}
