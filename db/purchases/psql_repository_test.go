package purchases_test

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbutils "ticketpurchase/db"
	"ticketpurchase/db/purchases"
	"ticketpurchase/entity"
	"ticketpurchase/pkg/outbox"
)

func newRepository(t *testing.T) *purchases.PostgresRepository {
	t.Helper()

	db := dbutils.GetDb(t)

	// outbox table is created by the subscriber
	sub, err := outbox.NewPostgresSubscriber(db, log.NewWatermill(logrus.NewEntry(logrus.StandardLogger())))
	require.NoError(t, err)
	require.NoError(t, sub.SubscribeInitialize(outbox.Topic))

	return purchases.NewPostgresRepository(db)
}

func newPurchase(accountID int64) entity.Purchase {
	return entity.Purchase{
		PurchaseID: uuid.NewString(),
		AccountID:  accountID,
		Tickets: []entity.TicketTypeRequest{
			entity.NewTicketTypeRequest(2, entity.TicketTypeInfant),
			entity.NewTicketTypeRequest(2, entity.TicketTypeChild),
			entity.NewTicketTypeRequest(2, entity.TicketTypeAdult),
		},
		TotalAmount: 60,
		TotalSeats:  4,
		PurchasedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func TestPostgresRepository_Store_idempotency(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	accountID := time.Now().UnixNano()
	purchase := newPurchase(accountID)

	for i := 0; i < 2; i++ {
		err := repo.Store(ctx, purchase)
		require.NoError(t, err)

		list, err := repo.FindByAccount(ctx, accountID)
		require.NoError(t, err)

		require.Len(t, list, 1)
	}

	stored, err := repo.Get(ctx, purchase.PurchaseID)
	require.NoError(t, err)

	assert.Equal(t, purchase.PurchaseID, stored.PurchaseID)
	assert.Equal(t, purchase.AccountID, stored.AccountID)
	assert.Equal(t, purchase.Tickets, stored.Tickets)
	assert.Equal(t, purchase.TotalAmount, stored.TotalAmount)
	assert.Equal(t, purchase.TotalSeats, stored.TotalSeats)
	assert.True(t, purchase.PurchasedAt.Equal(stored.PurchasedAt))
}

func TestPostgresRepository_FindByAccount(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	accountID := time.Now().UnixNano()
	first := newPurchase(accountID)
	second := newPurchase(accountID)
	second.PurchasedAt = first.PurchasedAt.Add(time.Minute)
	other := newPurchase(accountID + 1)

	for _, p := range []entity.Purchase{second, first, other} {
		require.NoError(t, repo.Store(ctx, p))
	}

	list, err := repo.FindByAccount(ctx, accountID)
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.Equal(t, first.PurchaseID, list[0].PurchaseID)
	assert.Equal(t, second.PurchaseID, list[1].PurchaseID)
}

func TestPostgresRepository_Get_not_found(t *testing.T) {
	repo := newRepository(t)

	_, err := repo.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
