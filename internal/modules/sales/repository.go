package sales

import "context"

// Repository defines data access for completed transactions. Transactions
// are append-only from the POS side; Delete exists for the owner's
// administrative cleanup only.
type Repository interface {
	Create(ctx context.Context, tx *Transaction) error
	GetByID(ctx context.Context, id string) (*Transaction, error)
	// List returns all transactions, newest first.
	List(ctx context.Context) ([]*Transaction, error)
	Delete(ctx context.Context, id string) error
}

// Watcher streams full transaction-list snapshots pushed by the store.
type Watcher interface {
	WatchTransactions(ctx context.Context) (<-chan []*Transaction, <-chan error)
}
