package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketpurchase/db"
	"ticketpurchase/entity"
)

func TestDataLake_StoreEvent_idempotency(t *testing.T) {
	ctx := context.Background()
	dataLake := db.NewDataLake(db.GetDb(t))

	event := entity.DataLakeEvent{
		ID:          uuid.NewString(),
		PublishedAt: time.Now().UTC().Truncate(time.Millisecond),
		Name:        "TicketsPurchased",
		Payload:     []byte(`{"account_id": 1}`),
	}

	for i := 0; i < 2; i++ {
		require.NoError(t, dataLake.StoreEvent(ctx, event))
	}

	events, err := dataLake.GetEvents(ctx)
	require.NoError(t, err)

	stored := lo.Filter(events, func(e entity.DataLakeEvent, _ int) bool {
		return e.ID == event.ID
	})
	require.Len(t, stored, 1)
	assert.Equal(t, event.Name, stored[0].Name)
	assert.JSONEq(t, string(event.Payload), string(stored[0].Payload))
}
