package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"ticketpurchase/app"
	"ticketpurchase/config"
	"ticketpurchase/gateway"
	"ticketpurchase/pkg"
	"ticketpurchase/tracing"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if config.IsHelp(err) {
		logrus.Info(err)
		return
	}
	if err != nil {
		panic(err)
	}

	log.Init(cfg.Level())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	traceProvider, err := tracing.ConfigureTraceProvider(cfg.JaegerEndpoint, cfg.GatewayAddr)
	if err != nil {
		panic(err)
	}

	traceDB, err := otelsql.Open("postgres", cfg.PostgresURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName("db"))
	if err != nil {
		panic(err)
	}

	db := sqlx.NewDb(traceDB, "postgres")
	defer db.Close()

	redisClient := pkg.NewRedisClient(cfg.RedisAddr)
	defer redisClient.Close()

	clients, err := gateway.NewClients(cfg.GatewayAddr)
	if err != nil {
		panic(err)
	}

	err = app.New(
		cfg.HTTPAddr,
		db,
		redisClient,
		gateway.NewPaymentClient(clients),
		gateway.NewSeatReservationClient(clients),
		traceProvider,
	).Run(ctx)
	if err != nil {
		panic(err)
	}
}
