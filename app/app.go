package app

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	watermillSQL "github.com/ThreeDotsLabs/watermill-sql/v2/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"

	dbLib "ticketpurchase/db"
	"ticketpurchase/db/purchases"
	"ticketpurchase/db/read_model_account_purchases"
	"ticketpurchase/http"
	migrations "ticketpurchase/migration"
	"ticketpurchase/pkg"
	"ticketpurchase/pkg/outbox"
	"ticketpurchase/pubsub"
	"ticketpurchase/pubsub/bus"
	"ticketpurchase/pubsub/command"
	"ticketpurchase/pubsub/event"
	"ticketpurchase/service"
)

type App struct {
	db                 *sqlx.DB
	watermillRouter    *message.Router
	postgresSubscriber *watermillSQL.Subscriber
	forwarder          *forwarder.Forwarder
	httpServer         *http.Server
	accountsReadModel  read_model_account_purchases.AccountPurchasesReadModel
	dataLake           dbLib.DataLake
	traceProvider      *tracesdk.TracerProvider
}

func New(
	addr string,
	db *sqlx.DB,
	redisClient *redis.Client,
	paymentService service.PaymentService,
	seatReservationService service.SeatReservationService,
	traceProvider *tracesdk.TracerProvider,
) App {
	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

	redisPublisher, err := pubsub.NewRedisPublisher(redisClient, watermillLogger)
	if err != nil {
		panic(fmt.Errorf("failed to create redis publisher: %w", err))
	}

	commandBus, err := bus.NewCommandBus(redisPublisher)
	if err != nil {
		panic(fmt.Errorf("failed to create command bus: %w", err))
	}

	purchasesRepo := purchases.NewPostgresRepository(db)
	accountsReadModel := read_model_account_purchases.NewAccountPurchasesReadModel(db)
	dataLake := dbLib.NewDataLake(db)

	ticketService := service.NewTicketService(paymentService, seatReservationService)

	eventsHandler := event.NewHandler(accountsReadModel)
	commandsHandler := command.NewHandler(ticketService, purchasesRepo)

	watermillRouter, err := pubsub.NewWatermillRouter(
		redisClient,
		redisPublisher,
		pkg.NewEventProcessorConfig(redisClient, watermillLogger),
		eventsHandler,
		pkg.NewCommandProcessorConfig(redisClient, watermillLogger),
		commandsHandler,
		dataLake,
		watermillLogger,
	)
	if err != nil {
		panic(fmt.Errorf("failed to create watermill router: %w", err))
	}

	postgresSubscriber, err := outbox.NewPostgresSubscriber(db, watermillLogger)
	if err != nil {
		panic(err)
	}

	fwd, err := outbox.NewForwarder(postgresSubscriber, redisPublisher, watermillLogger)
	if err != nil {
		panic(err)
	}

	httpServer := http.NewServer(
		addr,
		commandBus,
		ticketService,
		purchasesRepo,
		accountsReadModel,
	)

	return App{
		db:                 db,
		watermillRouter:    watermillRouter,
		postgresSubscriber: postgresSubscriber,
		forwarder:          fwd,
		httpServer:         httpServer,
		accountsReadModel:  accountsReadModel,
		dataLake:           dataLake,
		traceProvider:      traceProvider,
	}
}

func (s App) Run(ctx context.Context) error {
	if err := dbLib.InitializeDatabaseSchema(s.db); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	// the outbox table has to exist before the first purchase is stored
	if err := s.postgresSubscriber.SubscribeInitialize(outbox.Topic); err != nil {
		return fmt.Errorf("failed to initialize outbox: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := migrations.MigrateReadModel(ctx, s.dataLake, s.accountsReadModel)
		if err != nil {
			log.FromContext(ctx).Errorf("failed to migrate read model: %s", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return s.traceProvider.Shutdown(context.Background())
	})

	g.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	g.Go(func() error {
		return s.forwarder.Run(ctx)
	})

	g.Go(func() error {
		// the app is not healthy until the router consumes messages
		<-s.watermillRouter.Running()

		return s.httpServer.Run(ctx)
	})

	return g.Wait()
}
