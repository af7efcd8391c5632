package metrics

import (
	"softcontrol-backoffice/internal/domain/model"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		subscriptionsTotal,
		licensesActiveTotal,
		goalsRefreshedTotal,
	)
}

var (
	subscriptionsTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "subscriptions_total",
			Help: "Current number of subscriptions by status.",
		},
		[]string{"status"},
	)

	licensesActiveTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "licenses_active_total",
			Help: "Current number of active licenses.",
		},
	)

	goalsRefreshedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goals_refreshed_total",
			Help: "Auto-calculated goal refresh runs, labeled by status.",
		},
		[]string{"status"}, // 'completed', 'failed'
	)
)

func SetSubscriptionsTotal(counts map[model.SubscriptionStatus]int) {
	statuses := []model.SubscriptionStatus{
		model.SubscriptionStatusPending,
		model.SubscriptionStatusActive,
		model.SubscriptionStatusTrial,
		model.SubscriptionStatusCancelled,
		model.SubscriptionStatusExpired,
	}
	for _, status := range statuses {
		if count, ok := counts[status]; ok {
			subscriptionsTotal.WithLabelValues(string(status)).Set(float64(count))
		}
	}
}

func SetLicensesActive(count int) {
	licensesActiveTotal.Set(float64(count))
}

func IncGoalRefresh(status string) {
	goalsRefreshedTotal.WithLabelValues(norm(status)).Inc()
}
