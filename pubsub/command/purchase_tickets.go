package command

import (
	"context"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/sirupsen/logrus"

	"ticketpurchase/entity"
	"ticketpurchase/metrics"
)

func (h Handler) PurchaseTicketsHandler() cqrs.CommandHandler {
	return cqrs.NewCommandHandler(
		"PurchaseTicketsHandler",
		h.PurchaseTickets,
	)
}

// PurchaseTickets handles the PurchaseTickets command. It never returns an error:
// payment and seat reservation must run at most once per command, so the message is
// acknowledged whatever the outcome and failures are only logged.
func (h Handler) PurchaseTickets(ctx context.Context, cmd *entity.PurchaseTickets) error {
	logger := log.FromContext(ctx).WithFields(logrus.Fields{
		"purchase_id": cmd.PurchaseID,
		"account_id":  cmd.AccountID,
	})
	logger.Info("Purchasing tickets")

	purchase, err := h.ticketService.PurchaseTickets(ctx, cmd.AccountID, cmd.Tickets...)
	if entity.IsInvalidPurchase(err) {
		metrics.PurchasesRejected.WithLabelValues(err.Error()).Inc()
		logger.WithError(err).Warn("Dropping invalid ticket purchase")
		return nil
	}
	if err != nil {
		metrics.PurchasesFailed.WithLabelValues(metrics.PurchaseStageDispatch).Inc()
		logger.WithError(err).Error("Ticket purchase failed, the command is not retried")
		return nil
	}

	purchase.PurchaseID = cmd.PurchaseID
	purchase.PurchasedAt = cmd.Header.PublishedAt

	if err := h.purchasesRepo.Store(ctx, purchase); err != nil {
		metrics.PurchasesFailed.WithLabelValues(metrics.PurchaseStageStore).Inc()
		logger.WithError(err).WithFields(logrus.Fields{
			"total_amount": purchase.TotalAmount,
			"total_seats":  purchase.TotalSeats,
		}).Error("Tickets paid and reserved, but the purchase was not stored")
		return nil
	}

	return nil
}
