package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	PurchaseStageDispatch = "dispatch"
	PurchaseStageStore    = "store"
)

var (
	// MessagesProcessed The total number of processed messages (counter)
	MessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "messages",
			Name:      "processed_total",
			Help:      "The total number of processed messages",
		},
		[]string{"topic", "handler"},
	)

	// MessagesProcessingFailed total number of message processing failures (counter)
	MessagesProcessingFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "messages",
			Name:      "processing_failed_total",
			Help:      "The total number of message processing failures",
		},
		[]string{"topic", "handler"},
	)

	// MessagesProcessingDuration The total time spent processing messages (summary with quantiles 0.5, 0.9, and 0.99)
	MessagesProcessingDuration = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace:  "messages",
			Name:       "processing_duration_seconds",
			Help:       "The total time spent processing messages",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"topic", "handler"},
	)

	TicketsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tickets",
			Name:      "sold_total",
			Help:      "The total number of sold tickets",
		},
		[]string{"type"},
	)

	TicketsRevenue = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tickets",
			Name:      "revenue_total",
			Help:      "The total amount paid for tickets",
		},
	)

	SeatsReserved = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tickets",
			Name:      "seats_reserved_total",
			Help:      "The total number of reserved seats",
		},
	)

	// PurchasesFailed counts purchases that failed after validation, labelled with the failed stage
	PurchasesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tickets",
			Name:      "purchases_failed_total",
			Help:      "The total number of ticket purchases that failed after validation",
		},
		[]string{"stage"},
	)

	// PurchasesRejected counts purchases rejected by validation, labelled with the rule message
	PurchasesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tickets",
			Name:      "purchases_rejected_total",
			Help:      "The total number of rejected ticket purchases",
		},
		[]string{"reason"},
	)
)
