package read_model_account_purchases

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/jmoiron/sqlx"

	"ticketpurchase/db"
	"ticketpurchase/entity"
)

// AccountPurchasesReadModel keeps per-account purchase totals, built from TicketsPurchased events.
type AccountPurchasesReadModel struct {
	db *sqlx.DB
}

func NewAccountPurchasesReadModel(db *sqlx.DB) AccountPurchasesReadModel {
	if db == nil {
		panic("db is nil")
	}

	return AccountPurchasesReadModel{db: db}
}

func (r AccountPurchasesReadModel) All(ctx context.Context) ([]entity.AccountPurchases, error) {
	var payloads [][]byte
	err := r.db.SelectContext(ctx, &payloads, `
		SELECT payload 
		FROM read_model_account_purchases
		ORDER BY account_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("could not get account purchases read models: %w", err)
	}

	result := make([]entity.AccountPurchases, 0, len(payloads))
	for _, payload := range payloads {
		rm, err := r.unmarshalReadModelFromDB(payload)
		if err != nil {
			return nil, err
		}
		result = append(result, rm)
	}

	return result, nil
}

func (r AccountPurchasesReadModel) Get(ctx context.Context, accountID int64) (entity.AccountPurchases, error) {
	rm, err := r.findReadModelByAccountID(ctx, accountID, r.db)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.AccountPurchases{}, entity.ErrNotFound
	}
	if err != nil {
		return entity.AccountPurchases{}, fmt.Errorf("could not get account purchases read model: %w", err)
	}

	return rm, nil
}

func (r AccountPurchasesReadModel) OnTicketsPurchased(ctx context.Context, event *entity.TicketsPurchased) error {
	return db.UpdateInTx(
		ctx,
		r.db,
		sql.LevelRepeatableRead,
		func(ctx context.Context, tx *sqlx.Tx) error {
			rm, err := r.findReadModelByAccountID(ctx, event.AccountID, tx)
			if errors.Is(err, sql.ErrNoRows) {
				rm = entity.AccountPurchases{
					AccountID: event.AccountID,
					Purchases: map[string]entity.AccountPurchase{},
				}
			} else if err != nil {
				return fmt.Errorf("could not find read model: %w", err)
			}

			if _, ok := rm.Purchases[event.PurchaseID]; ok {
				log.
					FromContext(ctx).
					WithField("purchase_id", event.PurchaseID).
					Debug("Purchase already in read model")
				return nil
			}

			rm.Purchases[event.PurchaseID] = entity.AccountPurchase{
				Tickets:     event.Tickets,
				TotalAmount: event.TotalAmount,
				TotalSeats:  event.TotalSeats,
				PurchasedAt: event.Header.PublishedAt,
			}

			return r.updateReadModel(ctx, tx, rm)
		},
	)
}

func (r AccountPurchasesReadModel) updateReadModel(
	ctx context.Context,
	tx *sqlx.Tx,
	rm entity.AccountPurchases,
) error {
	rm.Recalculate()
	rm.LastUpdate = time.Now()

	payload, err := json.Marshal(rm)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO 
			read_model_account_purchases (payload, account_id)
		VALUES
			($1, $2)
		ON CONFLICT (account_id) DO UPDATE SET payload = excluded.payload;
		`, payload, rm.AccountID)
	if err != nil {
		return fmt.Errorf("could not update read model: %w", err)
	}

	return nil
}

func (r AccountPurchasesReadModel) findReadModelByAccountID(
	ctx context.Context,
	accountID int64,
	db dbExecutor,
) (entity.AccountPurchases, error) {
	var payload []byte

	err := db.QueryRowContext(
		ctx,
		"SELECT payload FROM read_model_account_purchases WHERE account_id = $1",
		accountID,
	).Scan(&payload)
	if err != nil {
		return entity.AccountPurchases{}, err
	}

	return r.unmarshalReadModelFromDB(payload)
}

func (r AccountPurchasesReadModel) unmarshalReadModelFromDB(payload []byte) (entity.AccountPurchases, error) {
	var dbReadModel entity.AccountPurchases
	if err := json.Unmarshal(payload, &dbReadModel); err != nil {
		return entity.AccountPurchases{}, fmt.Errorf("could not unmarshal read model: %w", err)
	}

	if dbReadModel.Purchases == nil {
		dbReadModel.Purchases = map[string]entity.AccountPurchase{}
	}

	return dbReadModel, nil
}

type dbExecutor interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
