package sales

import (
	"context"
	"database/sql"
	"encoding/json"
)

type postgresRepository struct{ db *sql.DB }

// NewPostgresRepository creates a PostgreSQL transaction repository. The
// timestamp column defaults to now() on insert, mirroring the
// server-assigned timestamp the document store provides.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, tx *Transaction) error {
	items, err := json.Marshal(tx.Items)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO transactions
		  (id, customer_name, channel, items, total, payment_method,
		   amount_paid, change, cashier_id, cashier_name)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		tx.ID, tx.CustomerName, tx.Channel, items, tx.Total, tx.PaymentMethod,
		tx.AmountPaid, tx.Change, tx.CashierID, tx.CashierName)
	return err
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*Transaction, error) {
	return scanTransaction(r.db.QueryRowContext(ctx, `
		SELECT id, customer_name, channel, items, total, payment_method,
		       amount_paid, change, timestamp, cashier_id, cashier_name
		FROM transactions WHERE id = $1`, id))
}

func (r *postgresRepository) List(ctx context.Context) ([]*Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_name, channel, items, total, payment_method,
		       amount_paid, change, timestamp, cashier_id, cashier_name
		FROM transactions ORDER BY timestamp DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var txs []*Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	return err
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanTransaction(row rowScanner) (*Transaction, error) {
	tx := &Transaction{}
	var items []byte
	err := row.Scan(&tx.ID, &tx.CustomerName, &tx.Channel, &items, &tx.Total,
		&tx.PaymentMethod, &tx.AmountPaid, &tx.Change, &tx.Timestamp,
		&tx.CashierID, &tx.CashierName)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &tx.Items); err != nil {
			return nil, err
		}
	}
	return tx, nil
}
