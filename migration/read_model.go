package migrations

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/sirupsen/logrus"

	"ticketpurchase/entity"
)

type DataLake interface {
	GetEvents(ctx context.Context) ([]entity.DataLakeEvent, error)
}

type AccountPurchasesReadModel interface {
	OnTicketsPurchased(ctx context.Context, event *entity.TicketsPurchased) error
}

// MigrateReadModel rebuilds the account purchases read model from the data lake.
// Events other than TicketsPurchased are skipped.
func MigrateReadModel(ctx context.Context, dl DataLake, rm AccountPurchasesReadModel) error {
	logger := log.FromContext(ctx)
	logger.Info("Migrating read model")

	events, err := dl.GetEvents(ctx)
	if err != nil {
		return fmt.Errorf("could not get events from data lake: %w", err)
	}

	if len(events) == 0 {
		logger.Info("No events to migrate")
		return nil
	}

	logger.WithField("events_count", len(events)).Info("Has events to migrate")

	migrated := 0
	for _, event := range events {
		start := time.Now()

		eventLogger := logger.WithFields(logrus.Fields{
			"event_name": event.Name,
			"event_id":   event.ID,
		})

		ok, err := migrateEvent(ctx, event, rm)
		if err != nil {
			return fmt.Errorf("could not migrate event %s (%s): %w", event.ID, event.Name, err)
		}
		if !ok {
			eventLogger.Debug("Skipping event")
			continue
		}

		migrated++
		eventLogger.WithField("duration", time.Since(start)).Debug("Event migrated")
	}

	logger.WithField("migrated_count", migrated).Info("Read model migrated")

	return nil
}

func migrateEvent(ctx context.Context, event entity.DataLakeEvent, rm AccountPurchasesReadModel) (bool, error) {
	switch event.Name {
	case "TicketsPurchased":
		ticketsPurchased, err := unmarshalDataLakeEvent[entity.TicketsPurchased](event)
		if err != nil {
			return false, err
		}

		return true, rm.OnTicketsPurchased(ctx, ticketsPurchased)
	default:
		return false, nil
	}
}

func unmarshalDataLakeEvent[T any](event entity.DataLakeEvent) (*T, error) {
	eventInstance := new(T)

	err := json.Unmarshal(event.Payload, eventInstance)
	if err != nil {
		return nil, fmt.Errorf("could not unmarshal event %s: %w", event.Name, err)
	}

	return eventInstance, nil
}
