package entity

import "time"

type Purchase struct {
	PurchaseID  string              `json:"purchase_id" db:"purchase_id"`
	AccountID   int64               `json:"account_id" db:"account_id"`
	Tickets     []TicketTypeRequest `json:"tickets" db:"-"`
	TotalAmount int                 `json:"total_amount" db:"total_amount"`
	TotalSeats  int                 `json:"total_seats" db:"total_seats"`
	PurchasedAt time.Time           `json:"purchased_at" db:"purchased_at"`
}
