package command

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"ticketpurchase/entity"
)

type TicketService interface {
	PurchaseTickets(ctx context.Context, accountID int64, ticketTypeRequests ...entity.TicketTypeRequest) (entity.Purchase, error)
}

type PurchasesRepository interface {
	Store(ctx context.Context, purchase entity.Purchase) error
}

type Handler struct {
	ticketService TicketService
	purchasesRepo PurchasesRepository
}

func NewHandler(
	ticketService TicketService,
	purchasesRepo PurchasesRepository,
) Handler {
	if ticketService == nil {
		panic("missing ticketService")
	}
	if purchasesRepo == nil {
		panic("missing purchasesRepo")
	}

	return Handler{
		ticketService: ticketService,
		purchasesRepo: purchasesRepo,
	}
}

func (h Handler) Handlers() []cqrs.CommandHandler {
	return []cqrs.CommandHandler{
		h.PurchaseTicketsHandler(),
	}
}
