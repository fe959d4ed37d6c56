package entity

import "fmt"

type TicketType string

const (
	TicketTypeAdult  TicketType = "ADULT"
	TicketTypeChild  TicketType = "CHILD"
	TicketTypeInfant TicketType = "INFANT"
)

// TicketTypes lists every known ticket type, in price order.
var TicketTypes = []TicketType{TicketTypeAdult, TicketTypeChild, TicketTypeInfant}

func (t TicketType) IsValid() bool {
	switch t {
	case TicketTypeAdult, TicketTypeChild, TicketTypeInfant:
		return true
	default:
		return false
	}
}

func (t TicketType) String() string {
	return string(t)
}

func (t *TicketType) UnmarshalText(text []byte) error {
	parsed := TicketType(text)
	if !parsed.IsValid() {
		return fmt.Errorf("unknown ticket type: %q", string(text))
	}

	*t = parsed
	return nil
}

// TicketTypeRequest is a single purchase line. It is passed by value and never modified.
type TicketTypeRequest struct {
	NoOfTickets int        `json:"no_of_tickets"`
	Type        TicketType `json:"type"`
}

func NewTicketTypeRequest(noOfTickets int, ticketType TicketType) TicketTypeRequest {
	return TicketTypeRequest{
		NoOfTickets: noOfTickets,
		Type:        ticketType,
	}
}
