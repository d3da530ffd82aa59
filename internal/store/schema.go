package store

import (
	"context"
	"database/sql"
)

// schema is the fallback store's DDL. Kept idempotent so a fresh database
// comes up without a separate migration step.
const schema = `
CREATE TABLE IF NOT EXISTS menu_items (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	category       TEXT NOT NULL DEFAULT '',
	price          BIGINT NOT NULL CHECK (price >= 0),
	channel_prices JSONB,
	image_url      TEXT
);

CREATE TABLE IF NOT EXISTS categories (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	uid           TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	username      TEXT NOT NULL,
	name          TEXT NOT NULL,
	role          TEXT NOT NULL,
	password_hash TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS transactions (
	id             TEXT PRIMARY KEY,
	customer_name  TEXT NOT NULL,
	channel        TEXT NOT NULL,
	items          JSONB NOT NULL,
	total          BIGINT NOT NULL,
	payment_method TEXT NOT NULL,
	amount_paid    BIGINT NOT NULL,
	change         BIGINT NOT NULL,
	timestamp      TIMESTAMPTZ NOT NULL DEFAULT now(),
	cashier_id     TEXT NOT NULL,
	cashier_name   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_timestamp ON transactions (timestamp DESC);
`

// EnsureSchema applies the DDL on startup in PostgreSQL mode.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
