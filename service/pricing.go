package service

import (
	"github.com/samber/lo"

	"ticketpurchase/entity"
)

// UnitPrice returns the price of a single ticket of the given type.
// It reports false for types outside of entity.TicketTypes.
func UnitPrice(ticketType entity.TicketType) (int, bool) {
	switch ticketType {
	case entity.TicketTypeInfant:
		return 0, true
	case entity.TicketTypeChild:
		return 10, true
	case entity.TicketTypeAdult:
		return 20, true
	default:
		return 0, false
	}
}

// totalAmount expects a validated batch: known types and at most 20 tickets.
func totalAmount(requests []entity.TicketTypeRequest) int {
	return lo.SumBy(requests, func(r entity.TicketTypeRequest) int {
		price, _ := UnitPrice(r.Type)
		return r.NoOfTickets * price
	})
}

// infants sit on an adult's lap
func totalSeats(requests []entity.TicketTypeRequest) int {
	return lo.SumBy(requests, func(r entity.TicketTypeRequest) int {
		if r.Type == entity.TicketTypeInfant {
			return 0
		}
		return r.NoOfTickets
	})
}
