package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"ticketpurchase/entity"
	"ticketpurchase/metrics"
)

type postTicketPurchasesRequest struct {
	AccountID int64                      `json:"account_id"`
	Tickets   []entity.TicketTypeRequest `json:"tickets"`
}

type purchaseResponse struct {
	PurchaseID  string                     `json:"purchase_id"`
	AccountID   int64                      `json:"account_id"`
	Tickets     []entity.TicketTypeRequest `json:"tickets,omitempty"`
	TotalAmount int                        `json:"total_amount"`
	TotalSeats  int                        `json:"total_seats"`
	PurchasedAt *time.Time                 `json:"purchased_at,omitempty"`
}

// purchaseNotStoredResponse is returned when tickets were paid and reserved but the purchase was not recorded.
type purchaseNotStoredResponse struct {
	Message string `json:"message"`
	purchaseResponse
}

type postTicketPurchasesAsyncResponse struct {
	PurchaseID string `json:"purchase_id"`
}

func (s Server) PostTicketPurchases(c echo.Context) error {
	var request postTicketPurchasesRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	ctx := c.Request().Context()

	purchase, err := s.ticketService.PurchaseTickets(ctx, request.AccountID, request.Tickets...)
	if entity.IsInvalidPurchase(err) {
		metrics.PurchasesRejected.WithLabelValues(err.Error()).Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return fmt.Errorf("failed to purchase tickets: %w", err)
	}

	purchase.PurchaseID = uuid.NewString()
	purchase.PurchasedAt = time.Now().UTC()

	if err := s.purchasesRepo.Store(ctx, purchase); err != nil {
		metrics.PurchasesFailed.WithLabelValues(metrics.PurchaseStageStore).Inc()
		log.FromContext(ctx).WithError(err).WithFields(logrus.Fields{
			"purchase_id":  purchase.PurchaseID,
			"account_id":   purchase.AccountID,
			"total_amount": purchase.TotalAmount,
			"total_seats":  purchase.TotalSeats,
		}).Error("Tickets paid and reserved, but the purchase was not stored")

		return c.JSON(http.StatusInternalServerError, purchaseNotStoredResponse{
			Message:          "tickets were paid and reserved, but the purchase could not be stored",
			purchaseResponse: toPurchaseResponse(purchase),
		})
	}

	return c.JSON(http.StatusCreated, purchaseResponse{
		PurchaseID:  purchase.PurchaseID,
		AccountID:   purchase.AccountID,
		TotalAmount: purchase.TotalAmount,
		TotalSeats:  purchase.TotalSeats,
	})
}

func (s Server) PostTicketPurchasesAsync(c echo.Context) error {
	var request postTicketPurchasesRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	purchaseID := uuid.NewString()

	err := s.commandBus.Send(c.Request().Context(), &entity.PurchaseTickets{
		Header:     entity.NewEventHeaderWithIdempotencyKey(purchaseID),
		PurchaseID: purchaseID,
		AccountID:  request.AccountID,
		Tickets:    request.Tickets,
	})
	if err != nil {
		return fmt.Errorf("failed to send PurchaseTickets command: %w", err)
	}

	return c.JSON(http.StatusAccepted, postTicketPurchasesAsyncResponse{
		PurchaseID: purchaseID,
	})
}

func (s Server) GetTicketPurchase(c echo.Context) error {
	purchaseID := c.Param("purchase_id")
	if _, err := uuid.Parse(purchaseID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid purchase_id")
	}

	purchase, err := s.purchasesRepo.Get(c.Request().Context(), purchaseID)
	if errors.Is(err, entity.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "purchase not found")
	}
	if err != nil {
		return fmt.Errorf("failed to get purchase: %w", err)
	}

	return c.JSON(http.StatusOK, toPurchaseResponse(purchase))
}

func (s Server) GetAccountTicketPurchases(c echo.Context) error {
	var accountID int64
	if err := echo.PathParamsBinder(c).MustInt64("account_id", &accountID).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid account_id")
	}

	purchases, err := s.purchasesRepo.FindByAccount(c.Request().Context(), accountID)
	if err != nil {
		return fmt.Errorf("failed to find purchases: %w", err)
	}

	response := make([]purchaseResponse, 0, len(purchases))
	for _, purchase := range purchases {
		response = append(response, toPurchaseResponse(purchase))
	}

	return c.JSON(http.StatusOK, response)
}

func toPurchaseResponse(purchase entity.Purchase) purchaseResponse {
	purchasedAt := purchase.PurchasedAt
	return purchaseResponse{
		PurchaseID:  purchase.PurchaseID,
		AccountID:   purchase.AccountID,
		Tickets:     purchase.Tickets,
		TotalAmount: purchase.TotalAmount,
		TotalSeats:  purchase.TotalSeats,
		PurchasedAt: &purchasedAt,
	}
}
