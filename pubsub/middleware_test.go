package pubsub_test

import (
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketpurchase/metrics"
	"ticketpurchase/pubsub"
)

func TestPropagateCorrelationIDMiddleware(t *testing.T) {
	var correlationID string
	handler := pubsub.PropagateCorrelationIDMiddleware(func(msg *message.Message) ([]*message.Message, error) {
		correlationID = log.CorrelationIDFromContext(msg.Context())
		return nil, nil
	})

	msg := message.NewMessage(watermill.NewUUID(), nil)
	msg.Metadata.Set("correlation_id", "test-correlation-id")

	_, err := handler(msg)
	require.NoError(t, err)
	assert.Equal(t, "test-correlation-id", correlationID)
}

func TestPropagateCorrelationIDMiddleware_generates_id(t *testing.T) {
	var correlationID string
	handler := pubsub.PropagateCorrelationIDMiddleware(func(msg *message.Message) ([]*message.Message, error) {
		correlationID = log.CorrelationIDFromContext(msg.Context())
		return nil, nil
	})

	_, err := handler(message.NewMessage(watermill.NewUUID(), nil))
	require.NoError(t, err)
	assert.NotEmpty(t, correlationID)
}

func TestMetricsMiddleware(t *testing.T) {
	// topic and handler are empty outside of a router
	processed := metrics.MessagesProcessed.WithLabelValues("", "")
	failed := metrics.MessagesProcessingFailed.WithLabelValues("", "")

	processedBefore := testutil.ToFloat64(processed)
	failedBefore := testutil.ToFloat64(failed)

	handler := pubsub.MetricsMiddleware(func(msg *message.Message) ([]*message.Message, error) {
		return nil, errors.New("handler failed")
	})

	_, err := handler(message.NewMessage(watermill.NewUUID(), nil))
	require.Error(t, err)

	assert.Equal(t, processedBefore+1, testutil.ToFloat64(processed))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}
