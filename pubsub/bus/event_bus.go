package bus

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"

	"ticketpurchase/entity"
	"ticketpurchase/pkg"
)

// EventsTopic receives every public event, it is stored in the data lake
// and split into per-event topics.
const EventsTopic = "events"

func NewEventBus(pub message.Publisher) (*cqrs.EventBus, error) {
	return cqrs.NewEventBusWithConfig(pub, cqrs.EventBusConfig{
		GeneratePublishTopic: func(params cqrs.GenerateEventPublishTopicParams) (string, error) {
			event, ok := params.Event.(entity.Event)
			if !ok {
				return "", fmt.Errorf("invalid event type: %T doesn't implement entity.Event", params.Event)
			}

			if event.IsInternal() {
				return "internal-events.svc-ticket-purchase." + params.EventName, nil
			}

			return EventsTopic, nil
		},
		Marshaler: pkg.Marshaler,
	})
}
