package service

import (
	"context"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/sirupsen/logrus"

	"ticketpurchase/entity"
)

type PaymentService interface {
	MakePayment(ctx context.Context, accountID int64, amountToPay int) error
}

type SeatReservationService interface {
	ReserveSeat(ctx context.Context, accountID int64, seatsToAllocate int) error
}

// TicketService validates ticket purchases, charges for them and reserves seats.
// It keeps no state between calls and is safe for concurrent use.
type TicketService struct {
	paymentService         PaymentService
	seatReservationService SeatReservationService
}

func NewTicketService(
	paymentService PaymentService,
	seatReservationService SeatReservationService,
) TicketService {
	if paymentService == nil {
		panic("missing paymentService")
	}
	if seatReservationService == nil {
		panic("missing seatReservationService")
	}

	return TicketService{
		paymentService:         paymentService,
		seatReservationService: seatReservationService,
	}
}

// PurchaseTickets validates the whole batch and, when it is valid, pays for the tickets
// and then reserves seats for them. A rejected batch returns *entity.InvalidPurchaseError
// before any payment or reservation is made.
//
// Errors from the payment and seat reservation services are returned as they are.
// A failed reservation does not refund the payment.
func (s TicketService) PurchaseTickets(
	ctx context.Context,
	accountID int64,
	ticketTypeRequests ...entity.TicketTypeRequest,
) (entity.Purchase, error) {
	logger := log.FromContext(ctx).WithField("account_id", accountID)

	if err := validatePurchase(accountID, ticketTypeRequests); err != nil {
		logger.WithField("reason", err.Error()).Info("Ticket purchase rejected")
		return entity.Purchase{}, err
	}

	totalAmountToPay := totalAmount(ticketTypeRequests)
	if err := s.paymentService.MakePayment(ctx, accountID, totalAmountToPay); err != nil {
		return entity.Purchase{}, err
	}

	totalSeatsToAllocate := totalSeats(ticketTypeRequests)
	if err := s.seatReservationService.ReserveSeat(ctx, accountID, totalSeatsToAllocate); err != nil {
		return entity.Purchase{}, err
	}

	logger.WithFields(logrus.Fields{
		"amount_paid":     totalAmountToPay,
		"seats_allocated": totalSeatsToAllocate,
	}).Info("Tickets purchased")

	return entity.Purchase{
		AccountID:   accountID,
		Tickets:     ticketTypeRequests,
		TotalAmount: totalAmountToPay,
		TotalSeats:  totalSeatsToAllocate,
	}, nil
}
