package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"ticketpurchase/entity"
)

func (s Server) GetOpsAccounts(c echo.Context) error {
	accounts, err := s.accountsReadModel.All(c.Request().Context())
	if err != nil {
		return fmt.Errorf("failed to get account purchases: %w", err)
	}

	return c.JSON(http.StatusOK, accounts)
}

func (s Server) GetOpsAccount(c echo.Context) error {
	var accountID int64
	if err := echo.PathParamsBinder(c).MustInt64("account_id", &accountID).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid account_id")
	}

	account, err := s.accountsReadModel.Get(c.Request().Context(), accountID)
	if errors.Is(err, entity.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "account not found")
	}
	if err != nil {
		return fmt.Errorf("failed to get account purchases: %w", err)
	}

	return c.JSON(http.StatusOK, account)
}
