package entity

import (
	"time"

	"github.com/google/uuid"
)

type Event interface {
	IsInternal() bool
}

type EventHeader struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:          uuid.NewString(),
		PublishedAt: time.Now().UTC(),
	}
}

func NewEventHeaderWithIdempotencyKey(idempotencyKey string) EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: idempotencyKey,
	}
}

type TicketsPurchased struct {
	Header EventHeader `json:"header"`

	PurchaseID  string              `json:"purchase_id"`
	AccountID   int64               `json:"account_id"`
	Tickets     []TicketTypeRequest `json:"tickets"`
	TotalAmount int                 `json:"total_amount"`
	TotalSeats  int                 `json:"total_seats"`
}

func (e TicketsPurchased) IsInternal() bool {
	return false
}

func NewTicketsPurchased(purchase Purchase) TicketsPurchased {
	return TicketsPurchased{
		Header:      NewEventHeaderWithIdempotencyKey(purchase.PurchaseID),
		PurchaseID:  purchase.PurchaseID,
		AccountID:   purchase.AccountID,
		Tickets:     purchase.Tickets,
		TotalAmount: purchase.TotalAmount,
		TotalSeats:  purchase.TotalSeats,
	}
}

// DataLakeEvent is a raw event as stored in the data lake.
type DataLakeEvent struct {
	ID          string    `db:"event_id"`
	PublishedAt time.Time `db:"published_at"`
	Name        string    `db:"event_name"`
	Payload     []byte    `db:"event_payload"`
}
