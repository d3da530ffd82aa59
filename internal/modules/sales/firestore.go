package sales

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
)

const transactionCollection = "transactions"

type firestoreRepository struct{ client *firestore.Client }

// NewFirestoreRepository creates a Firestore-backed transaction repository.
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

// Create persists the transaction. The provisional local timestamp is
// zeroed before the write so Firestore stamps the document with the server
// time; the caller's copy keeps the provisional value for immediate echo.
func (r *firestoreRepository) Create(ctx context.Context, tx *Transaction) error {
	stored := *tx
	stored.Timestamp = time.Time{}
	_, err := r.client.Collection(transactionCollection).Doc(tx.ID).Set(ctx, &stored)
	return err
}

func (r *firestoreRepository) GetByID(ctx context.Context, id string) (*Transaction, error) {
	doc, err := r.client.Collection(transactionCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, err
	}
	tx := &Transaction{}
	if err := doc.DataTo(tx); err != nil {
		return nil, err
	}
	tx.ID = doc.Ref.ID
	return tx, nil
}

func (r *firestoreRepository) List(ctx context.Context) ([]*Transaction, error) {
	docs, err := r.client.Collection(transactionCollection).
		OrderBy("timestamp", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	txs := make([]*Transaction, 0, len(docs))
	for _, doc := range docs {
		tx := &Transaction{}
		if err := doc.DataTo(tx); err != nil {
			return nil, err
		}
		tx.ID = doc.Ref.ID
		txs = append(txs, tx)
	}
	return txs, nil
}

func (r *firestoreRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(transactionCollection).Doc(id).Delete(ctx)
	return err
}

// WatchTransactions subscribes to the transaction collection, newest first,
// delivering the full list on every change.
func (r *firestoreRepository) WatchTransactions(ctx context.Context) (<-chan []*Transaction, <-chan error) {
	out := make(chan []*Transaction)
	errc := make(chan error, 1)
	iter := r.client.Collection(transactionCollection).
		OrderBy("timestamp", firestore.Desc).
		Snapshots(ctx)
	go func() {
		defer close(out)
		defer iter.Stop()
		for {
			snap, err := iter.Next()
			if err != nil {
				errc <- err
				return
			}
			docs, err := snap.Documents.GetAll()
			if err != nil {
				errc <- err
				return
			}
			txs := make([]*Transaction, 0, len(docs))
			for _, doc := range docs {
				tx := &Transaction{}
				if err := doc.DataTo(tx); err != nil {
					continue
				}
				tx.ID = doc.Ref.ID
				txs = append(txs, tx)
			}
			select {
			case out <- txs:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc
}
