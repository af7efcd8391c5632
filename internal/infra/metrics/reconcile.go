package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		reconcileOutcomesTotal,
		reconcileRevenueTotal,
	)
}

var (
	reconcileOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reconcile_outcomes_total",
			Help: "Reconciliation pipeline outcomes (success/no_customer/no_pending/error/...).",
		},
		[]string{"outcome"},
	)

	reconcileRevenueTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reconcile_revenue_total",
			Help: "Monetary value of reconciled payments, labeled by currency.",
		},
		[]string{"currency"},
	)
)

func IncReconcileOutcome(outcome string) {
	reconcileOutcomesTotal.WithLabelValues(norm(outcome)).Inc()
}

func AddRevenue(currency string, amount float64) {
	reconcileRevenueTotal.WithLabelValues(norm(currency)).Add(amount)
}
