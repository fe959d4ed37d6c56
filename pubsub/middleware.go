package pubsub

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/lithammer/shortuuid/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"ticketpurchase/metrics"
)

const (
	correlationIDMetadataKey = "correlation_id"

	// PoisonQueueTopic receives messages that still fail after all retries.
	PoisonQueueTopic = "PoisonQueue"
)

func useMiddlewares(
	router *message.Router,
	poisonQueuePublisher message.Publisher,
	watermillLogger watermill.LoggerAdapter,
) error {
	router.AddMiddleware(middleware.Recoverer)

	poisonQueue, err := middleware.PoisonQueue(poisonQueuePublisher, PoisonQueueTopic)
	if err != nil {
		return fmt.Errorf("could not create poison queue middleware: %w", err)
	}
	router.AddMiddleware(poisonQueue)

	router.AddMiddleware(middleware.Retry{
		MaxRetries:      10,
		InitialInterval: time.Millisecond * 100,
		MaxInterval:     time.Second,
		Multiplier:      2,
		Logger:          watermillLogger,
	}.Middleware)

	router.AddMiddleware(PropagateCorrelationIDMiddleware)
	router.AddMiddleware(TracingMiddleware)
	router.AddMiddleware(LoggingMiddleware)
	router.AddMiddleware(MetricsMiddleware)

	return nil
}

// PropagateCorrelationIDMiddleware puts the message correlation id, or a new one, into the handler context.
func PropagateCorrelationIDMiddleware(next message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		correlationID := msg.Metadata.Get(correlationIDMetadataKey)
		if correlationID == "" {
			correlationID = shortuuid.New()
		}

		ctx := log.ContextWithCorrelationID(msg.Context(), correlationID)
		ctx = log.ToContext(ctx, logrus.WithFields(logrus.Fields{"correlation_id": correlationID}))

		msg.SetContext(ctx)

		return next(msg)
	}
}

func TracingMiddleware(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) (events []*message.Message, err error) {
		ctx := otel.GetTextMapPropagator().Extract(msg.Context(), propagation.MapCarrier(msg.Metadata))
		topic := message.SubscribeTopicFromCtx(msg.Context())
		handler := message.HandlerNameFromCtx(msg.Context())
		ctx, span := otel.Tracer("").Start(ctx, "message handling: "+topic+"/"+handler)
		span.SetAttributes(
			attribute.String("topic", topic),
			attribute.String("handler", handler),
		)
		defer span.End()
		msg.SetContext(ctx)

		messages, err := h(msg)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return messages, err
	}
}

func LoggingMiddleware(next message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		traceID := trace.SpanFromContext(msg.Context()).SpanContext().TraceID().String()
		logger := log.FromContext(msg.Context()).WithFields(logrus.Fields{
			"message_uuid": msg.UUID,
			"handler":      message.HandlerNameFromCtx(msg.Context()),
			"trace_id":     traceID,
		})

		logger.Info("Handling a message")

		msgs, err := next(msg)
		if err != nil {
			logger.WithError(err).Error("Error while handling a message")
		}

		return msgs, err
	}
}

func MetricsMiddleware(next message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) (msgs []*message.Message, err error) {
		now := time.Now()
		labels := prometheus.Labels{
			"topic":   message.SubscribeTopicFromCtx(msg.Context()),
			"handler": message.HandlerNameFromCtx(msg.Context()),
		}

		defer func() {
			if err != nil {
				metrics.MessagesProcessingFailed.With(labels).Inc()
			}
			metrics.MessagesProcessed.With(labels).Inc()
			metrics.MessagesProcessingDuration.With(labels).Observe(time.Since(now).Seconds())
		}()

		return next(msg)
	}
}
