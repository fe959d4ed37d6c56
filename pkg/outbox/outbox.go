package outbox

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	watermillSQL "github.com/ThreeDotsLabs/watermill-sql/v2/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jmoiron/sqlx"

	"ticketpurchase/tracing"
)

// Topic is the postgres topic the forwarder reads enveloped messages from.
const Topic = "events_to_forward"

// NewPublisherForDb returns a publisher that stores messages in the outbox within tx.
// They are forwarded to their real topic once tx is committed.
func NewPublisherForDb(ctx context.Context, tx *sqlx.Tx) (message.Publisher, error) {
	var publisher message.Publisher

	logger := log.NewWatermill(log.FromContext(ctx))

	publisher, err := watermillSQL.NewPublisher(
		tx.Tx,
		watermillSQL.PublisherConfig{
			SchemaAdapter: watermillSQL.DefaultPostgreSQLSchema{},
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("could not create outbox publisher: %w", err)
	}

	publisher = forwarder.NewPublisher(publisher, forwarder.PublisherConfig{
		ForwarderTopic: Topic,
	})

	publisher = log.CorrelationPublisherDecorator{Publisher: publisher}
	publisher = tracing.PublisherDecorator{Publisher: publisher}

	return publisher, nil
}

func NewPostgresSubscriber(db *sqlx.DB, logger watermill.LoggerAdapter) (*watermillSQL.Subscriber, error) {
	sub, err := watermillSQL.NewSubscriber(db, watermillSQL.SubscriberConfig{
		SchemaAdapter:    watermillSQL.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillSQL.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("could not create outbox subscriber: %w", err)
	}

	return sub, nil
}

// NewForwarder moves messages from the outbox to pub.
func NewForwarder(
	sub message.Subscriber,
	pub message.Publisher,
	logger watermill.LoggerAdapter,
) (*forwarder.Forwarder, error) {
	fwd, err := forwarder.NewForwarder(sub, pub, logger, forwarder.Config{
		ForwarderTopic: Topic,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create forwarder: %w", err)
	}

	return fwd, nil
}
