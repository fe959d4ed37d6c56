package entity

import (
	"time"
)

type AccountPurchases struct {
	AccountID int64 `json:"account_id"`

	Purchases map[string]AccountPurchase `json:"purchases"`

	TicketsByType map[TicketType]int `json:"tickets_by_type"`
	TotalPaid     int                `json:"total_paid"`
	TotalSeats    int                `json:"total_seats"`

	LastUpdate time.Time `json:"last_update"`
}

type AccountPurchase struct {
	Tickets     []TicketTypeRequest `json:"tickets"`
	TotalAmount int                 `json:"total_amount"`
	TotalSeats  int                 `json:"total_seats"`
	PurchasedAt time.Time           `json:"purchased_at"`
}

// Recalculate rebuilds the totals from the stored purchases.
func (a *AccountPurchases) Recalculate() {
	a.TicketsByType = map[TicketType]int{}
	a.TotalPaid = 0
	a.TotalSeats = 0

	for _, purchase := range a.Purchases {
		for _, ticket := range purchase.Tickets {
			a.TicketsByType[ticket.Type] += ticket.NoOfTickets
		}
		a.TotalPaid += purchase.TotalAmount
		a.TotalSeats += purchase.TotalSeats
	}
}
