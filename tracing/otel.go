package tracing

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

const ServiceName = "ticket-purchase"

func ConfigureTraceProvider(jaegerEndpoint, gatewayEndpoint string) (*tracesdk.TracerProvider, error) {
	if jaegerEndpoint == "" {
		jaegerEndpoint = fmt.Sprintf("%s/jaeger-api/api/traces", gatewayEndpoint)
	}

	exp, err := jaeger.New(
		jaeger.WithCollectorEndpoint(
			jaeger.WithEndpoint(jaegerEndpoint),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create jaeger exporter: %w", err)
	}

	tp := tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exp),
		tracesdk.WithResource(
			resource.NewWithAttributes(
				semconv.SchemaURL,
				semconv.ServiceName(ServiceName),
			)),
	)

	otel.SetTracerProvider(tp)

	// without it the trace is not propagated via messages
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp, nil
}

type PublisherDecorator struct {
	message.Publisher
}

func (d PublisherDecorator) Publish(topic string, messages ...*message.Message) error {
	for i := range messages {
		otel.GetTextMapPropagator().Inject(messages[i].Context(), propagation.MapCarrier(messages[i].Metadata))
	}
	return d.Publisher.Publish(topic, messages...)
}
