package entity

type PurchaseTickets struct {
	Header EventHeader `json:"header"`

	PurchaseID string              `json:"purchase_id"`
	AccountID  int64               `json:"account_id"`
	Tickets    []TicketTypeRequest `json:"tickets"`
}
