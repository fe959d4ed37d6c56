package pubsub

import (
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"

	"ticketpurchase/tracing"
)

func NewRedisPublisher(rdb *redis.Client, watermillLogger watermill.LoggerAdapter) (message.Publisher, error) {
	var publisher message.Publisher
	publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: rdb,
	}, watermillLogger)
	if err != nil {
		return nil, fmt.Errorf("could not create redis publisher: %w", err)
	}

	publisher = log.CorrelationPublisherDecorator{Publisher: publisher}
	publisher = tracing.PublisherDecorator{Publisher: publisher}

	return publisher, nil
}
