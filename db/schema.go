package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

func InitializeDatabaseSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS purchases (
			purchase_id UUID PRIMARY KEY,
			account_id BIGINT NOT NULL,
			tickets JSONB NOT NULL,
			total_amount INTEGER NOT NULL,
			total_seats INTEGER NOT NULL,
			purchased_at TIMESTAMP WITH TIME ZONE NOT NULL
		);

		CREATE INDEX IF NOT EXISTS purchases_account_id_idx ON purchases (account_id);

		CREATE TABLE IF NOT EXISTS events (
			event_id UUID PRIMARY KEY,
			published_at TIMESTAMP NOT NULL,
			event_name VARCHAR(255) NOT NULL,
			event_payload JSONB NOT NULL
		);

		CREATE TABLE IF NOT EXISTS read_model_account_purchases (
			account_id BIGINT PRIMARY KEY,
			payload JSONB NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("could not initialize database schema: %w", err)
	}

	return nil
}
