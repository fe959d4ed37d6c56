package gateway

import (
	"context"
	"sync"
)

type SeatReservation struct {
	AccountID       int64
	SeatsToAllocate int
}

type SeatReservationMock struct {
	mock         sync.Mutex
	reservations []SeatReservation
}

func (c *SeatReservationMock) ReserveSeat(ctx context.Context, accountID int64, seatsToAllocate int) error {
	c.mock.Lock()
	defer c.mock.Unlock()

	c.reservations = append(c.reservations, SeatReservation{AccountID: accountID, SeatsToAllocate: seatsToAllocate})

	return nil
}

func (c *SeatReservationMock) Reservations() []SeatReservation {
	c.mock.Lock()
	defer c.mock.Unlock()

	return append([]SeatReservation(nil), c.reservations...)
}
