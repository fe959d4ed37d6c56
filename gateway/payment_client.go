package gateway

import (
	"context"
	"fmt"
)

const paymentsPath = "/payments-api/payments"

type makePaymentRequest struct {
	AccountID   int64 `json:"account_id"`
	AmountToPay int   `json:"amount_to_pay"`
}

type PaymentClient struct {
	clients *Clients
}

func NewPaymentClient(clients *Clients) PaymentClient {
	return PaymentClient{
		clients: clients,
	}
}

func (c PaymentClient) MakePayment(ctx context.Context, accountID int64, amountToPay int) error {
	statusCode, err := c.clients.postJSON(ctx, paymentsPath, makePaymentRequest{
		AccountID:   accountID,
		AmountToPay: amountToPay,
	})
	if err != nil {
		return fmt.Errorf("failed to make payment: %w", err)
	}

	if statusCode < 200 || statusCode >= 300 {
		return fmt.Errorf("unexpected status code while making payment: %d", statusCode)
	}

	return nil
}
