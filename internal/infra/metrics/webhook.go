package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		webhookEventsTotal,
		webhookDuplicatesTotal,
		webhookRejectedTotal,
	)
}

var (
	webhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Inbound payment webhook deliveries by event type.",
		},
		[]string{"type"},
	)

	webhookDuplicatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_duplicates_total",
			Help: "Deliveries skipped because the event id was already seen.",
		},
	)

	webhookRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_rejected_total",
			Help: "Deliveries rejected before reconciliation (bad payload, bad method).",
		},
		[]string{"reason"},
	)
)

func IncWebhookEvent(eventType string) {
	webhookEventsTotal.WithLabelValues(norm(eventType)).Inc()
}

func IncWebhookDuplicate() {
	webhookDuplicatesTotal.Inc()
}

func IncWebhookRejected(reason string) {
	webhookRejectedTotal.WithLabelValues(norm(reason)).Inc()
}
