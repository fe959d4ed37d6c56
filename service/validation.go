package service

import (
	"math/big"

	"github.com/samber/lo"

	"ticketpurchase/entity"
)

const maxTicketsPerPurchase = 20

type purchaseRule func(accountID int64, requests []entity.TicketTypeRequest) error

// purchaseRules are checked in order, the first broken one is reported.
// Every rule looks at the raw batch, none of them filters it for the next one.
var purchaseRules = []purchaseRule{
	func(accountID int64, _ []entity.TicketTypeRequest) error {
		if accountID <= 0 {
			return entity.ErrInvalidAccountID
		}
		return nil
	},
	func(_ int64, requests []entity.TicketTypeRequest) error {
		if exceedsTicketLimit(requests) {
			return entity.ErrTooManyTickets
		}
		return nil
	},
	func(_ int64, requests []entity.TicketTypeRequest) error {
		invalid := lo.CountBy(requests, func(r entity.TicketTypeRequest) bool {
			return r.NoOfTickets <= 0
		})
		if invalid >= 1 {
			return entity.ErrInvalidNoOfTickets
		}
		return nil
	},
	func(_ int64, requests []entity.TicketTypeRequest) error {
		adults := lo.CountBy(requests, func(r entity.TicketTypeRequest) bool {
			return r.Type == entity.TicketTypeAdult
		})
		if adults == 0 {
			return entity.ErrAdultTicketRequired
		}
		return nil
	},
	func(_ int64, requests []entity.TicketTypeRequest) error {
		if !lo.EveryBy(requests, func(r entity.TicketTypeRequest) bool { return r.Type.IsValid() }) {
			return entity.ErrInvalidTicketType
		}
		return nil
	},
}

// exceedsTicketLimit compares the raw sum of the batch, negative counts included, with the limit.
// The sum is exact, huge counts cannot wrap around below the limit.
func exceedsTicketLimit(requests []entity.TicketTypeRequest) bool {
	sum := new(big.Int)
	for _, r := range requests {
		sum.Add(sum, big.NewInt(int64(r.NoOfTickets)))
	}

	return sum.Cmp(big.NewInt(maxTicketsPerPurchase)) > 0
}

func validatePurchase(accountID int64, requests []entity.TicketTypeRequest) error {
	for _, rule := range purchaseRules {
		if err := rule(accountID, requests); err != nil {
			return err
		}
	}

	return nil
}
