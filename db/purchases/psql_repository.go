package purchases

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"ticketpurchase/db"
	"ticketpurchase/entity"
	"ticketpurchase/pkg/outbox"
	"ticketpurchase/pubsub/bus"
)

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	if db == nil {
		panic("db is nil")
	}

	return &PostgresRepository{db: db}
}

type purchaseRow struct {
	PurchaseID  string    `db:"purchase_id"`
	AccountID   int64     `db:"account_id"`
	Tickets     []byte    `db:"tickets"`
	TotalAmount int       `db:"total_amount"`
	TotalSeats  int       `db:"total_seats"`
	PurchasedAt time.Time `db:"purchased_at"`
}

// Store saves the purchase and publishes TicketsPurchased in the same transaction.
// Storing an already stored purchase does nothing.
func (r *PostgresRepository) Store(ctx context.Context, purchase entity.Purchase) error {
	tickets, err := json.Marshal(purchase.Tickets)
	if err != nil {
		return fmt.Errorf("could not marshal tickets: %w", err)
	}

	return db.UpdateInTx(
		ctx,
		r.db,
		sql.LevelReadCommitted,
		func(ctx context.Context, tx *sqlx.Tx) error {
			res, err := tx.NamedExecContext(ctx, `
				INSERT INTO 
				    purchases (purchase_id, account_id, tickets, total_amount, total_seats, purchased_at) 
				VALUES (:purchase_id, :account_id, :tickets, :total_amount, :total_seats, :purchased_at)
				ON CONFLICT (purchase_id) DO NOTHING
			`, purchaseRow{
				PurchaseID:  purchase.PurchaseID,
				AccountID:   purchase.AccountID,
				Tickets:     tickets,
				TotalAmount: purchase.TotalAmount,
				TotalSeats:  purchase.TotalSeats,
				PurchasedAt: purchase.PurchasedAt,
			})
			if err != nil {
				return fmt.Errorf("could not add purchase: %w", err)
			}

			rowsAffected, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if rowsAffected == 0 {
				// already stored, the event was published with it
				return nil
			}

			outboxPublisher, err := outbox.NewPublisherForDb(ctx, tx)
			if err != nil {
				return fmt.Errorf("could not create outbox publisher: %w", err)
			}

			eventBus, err := bus.NewEventBus(outboxPublisher)
			if err != nil {
				return err
			}

			err = eventBus.Publish(ctx, entity.NewTicketsPurchased(purchase))
			if err != nil {
				return fmt.Errorf("could not publish event: %w", err)
			}

			return nil
		},
	)
}

func (r *PostgresRepository) Get(ctx context.Context, purchaseID string) (entity.Purchase, error) {
	var row purchaseRow
	err := r.db.GetContext(ctx, &row, `
		SELECT purchase_id, account_id, tickets, total_amount, total_seats, purchased_at
		FROM purchases
		WHERE purchase_id = $1
	`, purchaseID)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Purchase{}, entity.ErrNotFound
	}
	if err != nil {
		return entity.Purchase{}, fmt.Errorf("could not get purchase %s: %w", purchaseID, err)
	}

	return row.toEntity()
}

func (r *PostgresRepository) FindByAccount(ctx context.Context, accountID int64) ([]entity.Purchase, error) {
	var rows []purchaseRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT purchase_id, account_id, tickets, total_amount, total_seats, purchased_at
		FROM purchases
		WHERE account_id = $1
		ORDER BY purchased_at ASC
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("could not get purchases of account %d: %w", accountID, err)
	}

	purchases := make([]entity.Purchase, 0, len(rows))
	for _, row := range rows {
		purchase, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, purchase)
	}

	return purchases, nil
}

func (r purchaseRow) toEntity() (entity.Purchase, error) {
	var tickets []entity.TicketTypeRequest
	if err := json.Unmarshal(r.Tickets, &tickets); err != nil {
		return entity.Purchase{}, fmt.Errorf("could not unmarshal tickets of purchase %s: %w", r.PurchaseID, err)
	}

	return entity.Purchase{
		PurchaseID:  r.PurchaseID,
		AccountID:   r.AccountID,
		Tickets:     tickets,
		TotalAmount: r.TotalAmount,
		TotalSeats:  r.TotalSeats,
		PurchasedAt: r.PurchasedAt,
	}, nil
}
