package http

import (
	"context"
	"errors"
	"net/http"

	echoHTTP "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"ticketpurchase/entity"
	"ticketpurchase/tracing"
)

type TicketService interface {
	PurchaseTickets(ctx context.Context, accountID int64, ticketTypeRequests ...entity.TicketTypeRequest) (entity.Purchase, error)
}

type PurchasesRepository interface {
	Store(ctx context.Context, purchase entity.Purchase) error
	Get(ctx context.Context, purchaseID string) (entity.Purchase, error)
	FindByAccount(ctx context.Context, accountID int64) ([]entity.Purchase, error)
}

type AccountPurchasesReadModel interface {
	All(ctx context.Context) ([]entity.AccountPurchases, error)
	Get(ctx context.Context, accountID int64) (entity.AccountPurchases, error)
}

type CommandBus interface {
	Send(ctx context.Context, cmd any) error
}

type Server struct {
	addr              string
	e                 *echo.Echo
	commandBus        CommandBus
	ticketService     TicketService
	purchasesRepo     PurchasesRepository
	accountsReadModel AccountPurchasesReadModel
}

func NewServer(
	addr string,
	commandBus CommandBus,
	ticketService TicketService,
	purchasesRepo PurchasesRepository,
	accountsReadModel AccountPurchasesReadModel,
) *Server {
	e := echoHTTP.NewEcho()
	e.Use(otelecho.Middleware(tracing.ServiceName))

	server := &Server{
		addr:              addr,
		e:                 e,
		commandBus:        commandBus,
		ticketService:     ticketService,
		purchasesRepo:     purchasesRepo,
		accountsReadModel: accountsReadModel,
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/ticket-prices", server.GetTicketPrices)
	e.POST("/ticket-purchases", server.PostTicketPurchases)
	e.POST("/ticket-purchases/async", server.PostTicketPurchasesAsync)
	e.GET("/ticket-purchases/:purchase_id", server.GetTicketPurchase)
	e.GET("/accounts/:account_id/ticket-purchases", server.GetAccountTicketPurchases)

	e.GET("/ops/accounts", server.GetOpsAccounts)
	e.GET("/ops/accounts/:account_id", server.GetOpsAccount)

	return server
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		err := s.e.Shutdown(context.Background())
		if err != nil {
			log.FromContext(ctx).WithError(err).Error("failed to shutdown HTTP server")
		}
	}()
	log.FromContext(ctx).WithField("addr", s.addr).Info("[HTTP] server listening")
	if err := s.e.Start(s.addr); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
