package gateway

import (
	"context"
	"fmt"
)

const seatReservationsPath = "/seat-reservation-api/reservations"

type reserveSeatRequest struct {
	AccountID       int64 `json:"account_id"`
	SeatsToAllocate int   `json:"seats_to_allocate"`
}

type SeatReservationClient struct {
	clients *Clients
}

func NewSeatReservationClient(clients *Clients) SeatReservationClient {
	return SeatReservationClient{
		clients: clients,
	}
}

func (c SeatReservationClient) ReserveSeat(ctx context.Context, accountID int64, seatsToAllocate int) error {
	statusCode, err := c.clients.postJSON(ctx, seatReservationsPath, reserveSeatRequest{
		AccountID:       accountID,
		SeatsToAllocate: seatsToAllocate,
	})
	if err != nil {
		return fmt.Errorf("failed to reserve seats: %w", err)
	}

	if statusCode < 200 || statusCode >= 300 {
		return fmt.Errorf("unexpected status code while reserving seats: %d", statusCode)
	}

	return nil
}
