package gateway

import (
	"context"
	"sync"
)

type Payment struct {
	AccountID   int64
	AmountToPay int
}

type PaymentMock struct {
	mock     sync.Mutex
	payments []Payment
}

func (c *PaymentMock) MakePayment(ctx context.Context, accountID int64, amountToPay int) error {
	c.mock.Lock()
	defer c.mock.Unlock()

	c.payments = append(c.payments, Payment{AccountID: accountID, AmountToPay: amountToPay})

	return nil
}

func (c *PaymentMock) Payments() []Payment {
	c.mock.Lock()
	defer c.mock.Unlock()

	return append([]Payment(nil), c.payments...)
}
