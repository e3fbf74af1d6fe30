package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SignupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pcrl_signups_total",
		Help: "Realtor accounts created.",
	})

	SweepRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pcrl_birthday_sweep_runs_total",
		Help: "Birthday sweep executions.",
	})

	NotificationsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pcrl_birthday_notifications_created_total",
		Help: "Birthday countdown notifications created.",
	})

	NotificationsDeliveredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pcrl_birthday_notifications_delivered_total",
		Help: "Birthday countdown notifications fully delivered.",
	})

	DeliveryFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pcrl_birthday_delivery_failures_total",
		Help: "Delivery attempts that left a notification undelivered.",
	})
)
