package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"ticketpurchase/entity"
	"ticketpurchase/service"
)

type ticketPriceResponse struct {
	Type  entity.TicketType `json:"type"`
	Price int               `json:"price"`
}

func (s Server) GetTicketPrices(c echo.Context) error {
	prices := lo.FilterMap(entity.TicketTypes, func(t entity.TicketType, _ int) (ticketPriceResponse, bool) {
		price, ok := service.UnitPrice(t)
		return ticketPriceResponse{
			Type:  t,
			Price: price,
		}, ok
	})

	return c.JSON(http.StatusOK, prices)
}
