package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketpurchase/entity"
	"ticketpurchase/gateway"
	"ticketpurchase/service"
)

type purchasesRepoFake struct {
	mu        sync.Mutex
	purchases []entity.Purchase
	storeErr  error
}

func (r *purchasesRepoFake) Store(ctx context.Context, purchase entity.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.storeErr != nil {
		return r.storeErr
	}

	r.purchases = append(r.purchases, purchase)
	return nil
}

func (r *purchasesRepoFake) Get(ctx context.Context, purchaseID string) (entity.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	purchase, ok := lo.Find(r.purchases, func(p entity.Purchase) bool { return p.PurchaseID == purchaseID })
	if !ok {
		return entity.Purchase{}, entity.ErrNotFound
	}
	return purchase, nil
}

func (r *purchasesRepoFake) FindByAccount(ctx context.Context, accountID int64) ([]entity.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return lo.Filter(r.purchases, func(p entity.Purchase, _ int) bool { return p.AccountID == accountID }), nil
}

type readModelFake struct {
	accounts map[int64]entity.AccountPurchases
}

func (r readModelFake) All(ctx context.Context) ([]entity.AccountPurchases, error) {
	return lo.Values(r.accounts), nil
}

func (r readModelFake) Get(ctx context.Context, accountID int64) (entity.AccountPurchases, error) {
	account, ok := r.accounts[accountID]
	if !ok {
		return entity.AccountPurchases{}, entity.ErrNotFound
	}
	return account, nil
}

type commandBusFake struct {
	sent []any
}

func (b *commandBusFake) Send(ctx context.Context, cmd any) error {
	b.sent = append(b.sent, cmd)
	return nil
}

type testServer struct {
	server       *Server
	payments     *gateway.PaymentMock
	reservations *gateway.SeatReservationMock
	repo         *purchasesRepoFake
	commandBus   *commandBusFake
}

func newTestServer() testServer {
	payments := &gateway.PaymentMock{}
	reservations := &gateway.SeatReservationMock{}
	repo := &purchasesRepoFake{}
	commandBus := &commandBusFake{}

	server := NewServer(
		":0",
		commandBus,
		service.NewTicketService(payments, reservations),
		repo,
		readModelFake{accounts: map[int64]entity.AccountPurchases{
			7: {AccountID: 7, TotalPaid: 40, TotalSeats: 2},
		}},
	)

	return testServer{
		server:       server,
		payments:     payments,
		reservations: reservations,
		repo:         repo,
		commandBus:   commandBus,
	}
}

func (ts testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()

	ts.server.e.ServeHTTP(rec, req)

	return rec
}

func TestPostTicketPurchases(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodPost, "/ticket-purchases", `{
		"account_id": 1,
		"tickets": [
			{"type": "INFANT", "no_of_tickets": 2},
			{"type": "CHILD", "no_of_tickets": 8},
			{"type": "ADULT", "no_of_tickets": 10}
		]
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var response purchaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	assert.NotEmpty(t, response.PurchaseID)
	assert.Equal(t, int64(1), response.AccountID)
	assert.Equal(t, 280, response.TotalAmount)
	assert.Equal(t, 18, response.TotalSeats)

	assert.Equal(t, []gateway.Payment{{AccountID: 1, AmountToPay: 280}}, ts.payments.Payments())
	assert.Equal(t, []gateway.SeatReservation{{AccountID: 1, SeatsToAllocate: 18}}, ts.reservations.Reservations())

	require.Len(t, ts.repo.purchases, 1)
	assert.Equal(t, response.PurchaseID, ts.repo.purchases[0].PurchaseID)
	assert.False(t, ts.repo.purchases[0].PurchasedAt.IsZero())
}

func TestPostTicketPurchases_invalid(t *testing.T) {
	testCases := []struct {
		Name            string
		Body            string
		ExpectedMessage string
	}{
		{
			Name:            "invalid_account",
			Body:            `{"account_id": 0, "tickets": [{"type": "ADULT", "no_of_tickets": 1}]}`,
			ExpectedMessage: "Account id should start from 1",
		},
		{
			Name:            "too_many_tickets",
			Body:            `{"account_id": 1, "tickets": [{"type": "ADULT", "no_of_tickets": 21}]}`,
			ExpectedMessage: "Only a maximum of 20 tickets that can be purchased at a time",
		},
		{
			Name:            "overflowing_ticket_count",
			Body:            `{"account_id": 1, "tickets": [{"type": "ADULT", "no_of_tickets": 9223372036854775807}, {"type": "ADULT", "no_of_tickets": 9223372036854775807}]}`,
			ExpectedMessage: "Only a maximum of 20 tickets that can be purchased at a time",
		},
		{
			Name:            "zero_tickets",
			Body:            `{"account_id": 1, "tickets": [{"type": "ADULT", "no_of_tickets": 0}]}`,
			ExpectedMessage: "Invalid no of tickets",
		},
		{
			Name:            "no_adult",
			Body:            `{"account_id": 1, "tickets": [{"type": "CHILD", "no_of_tickets": 2}]}`,
			ExpectedMessage: "Child and Infant tickets cannot be purchased without purchasing an Adult ticket",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			ts := newTestServer()

			rec := ts.do(http.MethodPost, "/ticket-purchases", tc.Body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.ExpectedMessage)

			assert.Empty(t, ts.payments.Payments())
			assert.Empty(t, ts.reservations.Reservations())
			assert.Empty(t, ts.repo.purchases)
		})
	}
}

func TestPostTicketPurchases_store_failed(t *testing.T) {
	ts := newTestServer()
	ts.repo.storeErr = errors.New("connection reset")

	rec := ts.do(http.MethodPost, "/ticket-purchases", `{"account_id": 4, "tickets": [{"type": "ADULT", "no_of_tickets": 2}, {"type": "INFANT", "no_of_tickets": 1}]}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var response purchaseNotStoredResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	assert.NotEmpty(t, response.PurchaseID)
	assert.NotEmpty(t, response.Message)
	assert.Equal(t, int64(4), response.AccountID)
	assert.Equal(t, 40, response.TotalAmount)
	assert.Equal(t, 2, response.TotalSeats)

	assert.Equal(t, []gateway.Payment{{AccountID: 4, AmountToPay: 40}}, ts.payments.Payments())
	assert.Equal(t, []gateway.SeatReservation{{AccountID: 4, SeatsToAllocate: 2}}, ts.reservations.Reservations())
}

func TestPostTicketPurchases_unknown_ticket_type(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodPost, "/ticket-purchases", `{"account_id": 1, "tickets": [{"type": "SENIOR", "no_of_tickets": 1}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ts.payments.Payments())
}

func TestPostTicketPurchasesAsync(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodPost, "/ticket-purchases/async", `{"account_id": 5, "tickets": [{"type": "ADULT", "no_of_tickets": 3}]}`)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	var response postTicketPurchasesAsyncResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	require.Len(t, ts.commandBus.sent, 1)
	cmd, ok := ts.commandBus.sent[0].(*entity.PurchaseTickets)
	require.True(t, ok)

	assert.Equal(t, response.PurchaseID, cmd.PurchaseID)
	assert.Equal(t, int64(5), cmd.AccountID)
	assert.Equal(t, []entity.TicketTypeRequest{entity.NewTicketTypeRequest(3, entity.TicketTypeAdult)}, cmd.Tickets)

	assert.Empty(t, ts.payments.Payments())
}

func TestGetTicketPurchase(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodPost, "/ticket-purchases", `{"account_id": 2, "tickets": [{"type": "ADULT", "no_of_tickets": 1}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created purchaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = ts.do(http.MethodGet, "/ticket-purchases/"+created.PurchaseID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched purchaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, created.PurchaseID, fetched.PurchaseID)
	assert.Equal(t, 20, fetched.TotalAmount)

	rec = ts.do(http.MethodGet, "/accounts/2/ticket-purchases", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []purchaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestGetTicketPurchase_not_found(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodGet, "/ticket-purchases/3f1c0c1e-7c1a-4d5e-9a55-0b0f4e1d2c3b", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodGet, "/ticket-purchases/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTicketPrices(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodGet, "/ticket-prices", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var prices []ticketPriceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prices))

	assert.ElementsMatch(t, []ticketPriceResponse{
		{Type: entity.TicketTypeAdult, Price: 20},
		{Type: entity.TicketTypeChild, Price: 10},
		{Type: entity.TicketTypeInfant, Price: 0},
	}, prices)
}

func TestGetOpsAccount(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodGet, "/ops/accounts/7", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var account entity.AccountPurchases
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	assert.Equal(t, 40, account.TotalPaid)

	rec = ts.do(http.MethodGet, "/ops/accounts/8", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodGet, "/ops/accounts/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodGet, "/ops/accounts", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
