package event

import (
	"context"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"ticketpurchase/entity"
	"ticketpurchase/metrics"
)

func (h Handler) RecordPurchaseMetricsHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"metrics.OnTicketsPurchased",
		func(ctx context.Context, event *entity.TicketsPurchased) error {
			log.FromContext(ctx).WithField("purchase_id", event.PurchaseID).Debug("Recording purchase metrics")

			RecordPurchase(event)
			return nil
		},
	)
}

// RecordPurchase updates sales counters. Redelivered events are counted again.
func RecordPurchase(event *entity.TicketsPurchased) {
	for _, ticket := range event.Tickets {
		metrics.TicketsSold.WithLabelValues(ticket.Type.String()).Add(float64(ticket.NoOfTickets))
	}
	metrics.TicketsRevenue.Add(float64(event.TotalAmount))
	metrics.SeatsReserved.Add(float64(event.TotalSeats))
}
