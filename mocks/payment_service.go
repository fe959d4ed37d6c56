package mocks

import (
	"context"
	"sync"
	"testing"
)

type PaymentCall struct {
	AccountID   int64
	AmountToPay int
}

// MockPaymentService implements PaymentService for testing purposes
type MockPaymentService struct {
	mu              sync.Mutex
	t               *testing.T
	MakePaymentFunc func(ctx context.Context, accountID int64, amountToPay int) error
	Calls           []PaymentCall
}

// NewMockPaymentService creates a new mock for PaymentService
func NewMockPaymentService(t *testing.T) *MockPaymentService {
	if t == nil {
		panic("missing required argument 't'")
	}

	return &MockPaymentService{t: t, Calls: make([]PaymentCall, 0)}
}

// MakePayment mock implementation, succeeds when MakePaymentFunc is not set
func (m *MockPaymentService) MakePayment(ctx context.Context, accountID int64, amountToPay int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, PaymentCall{AccountID: accountID, AmountToPay: amountToPay})
	if m.MakePaymentFunc == nil {
		return nil
	}

	return m.MakePaymentFunc(ctx, accountID, amountToPay)
}
