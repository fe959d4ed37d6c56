package event

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"ticketpurchase/entity"
)

type AccountPurchasesReadModel interface {
	OnTicketsPurchased(ctx context.Context, event *entity.TicketsPurchased) error
}

type Handler struct {
	readModel AccountPurchasesReadModel
}

func NewHandler(readModel AccountPurchasesReadModel) Handler {
	if readModel == nil {
		panic("missing readModel")
	}

	return Handler{
		readModel: readModel,
	}
}

func (h Handler) Handlers() []cqrs.EventHandler {
	return []cqrs.EventHandler{
		cqrs.NewEventHandler(
			"account_purchases_read_model.OnTicketsPurchased",
			h.readModel.OnTicketsPurchased,
		),
		h.RecordPurchaseMetricsHandler(),
	}
}
