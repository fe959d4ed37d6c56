package mocks

import (
	"context"
	"sync"
	"testing"
)

type SeatReservationCall struct {
	AccountID       int64
	SeatsToAllocate int
}

// MockSeatReservationService implements SeatReservationService for testing purposes
type MockSeatReservationService struct {
	mu              sync.Mutex
	t               *testing.T
	ReserveSeatFunc func(ctx context.Context, accountID int64, seatsToAllocate int) error
	Calls           []SeatReservationCall
}

// NewMockSeatReservationService creates a new mock for SeatReservationService
func NewMockSeatReservationService(t *testing.T) *MockSeatReservationService {
	if t == nil {
		panic("missing required argument 't'")
	}

	return &MockSeatReservationService{t: t, Calls: make([]SeatReservationCall, 0)}
}

// ReserveSeat mock implementation, succeeds when ReserveSeatFunc is not set
func (m *MockSeatReservationService) ReserveSeat(ctx context.Context, accountID int64, seatsToAllocate int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, SeatReservationCall{AccountID: accountID, SeatsToAllocate: seatsToAllocate})
	if m.ReserveSeatFunc == nil {
		return nil
	}

	return m.ReserveSeatFunc(ctx, accountID, seatsToAllocate)
}
