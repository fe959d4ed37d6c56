package entity

import "errors"

var ErrNotFound = errors.New("not found")

// InvalidPurchaseError is returned when a purchase request breaks one of the purchase rules.
// The message is part of the API and is returned to clients as is.
type InvalidPurchaseError struct {
	Message string
}

func NewInvalidPurchaseError(message string) *InvalidPurchaseError {
	return &InvalidPurchaseError{Message: message}
}

func (e *InvalidPurchaseError) Error() string {
	return e.Message
}

var (
	ErrInvalidAccountID    = NewInvalidPurchaseError("Account id should start from 1")
	ErrTooManyTickets      = NewInvalidPurchaseError("Only a maximum of 20 tickets that can be purchased at a time")
	ErrInvalidNoOfTickets  = NewInvalidPurchaseError("Invalid no of tickets")
	ErrAdultTicketRequired = NewInvalidPurchaseError("Child and Infant tickets cannot be purchased without purchasing an Adult ticket")
	ErrInvalidTicketType   = NewInvalidPurchaseError("Invalid ticket type")
)

func IsInvalidPurchase(err error) bool {
	var invalidPurchaseErr *InvalidPurchaseError
	return errors.As(err, &invalidPurchaseErr)
}
