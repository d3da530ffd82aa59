package sales

import (
	"context"
	"log"
	"sync"
	"time"
)

// History keeps a local copy of the transaction list, newest first, fed by
// the store's realtime watch. Like the menu cache, every delivery fully
// replaces the previous snapshot and a dropped subscription flags the copy
// stale instead of blocking readers.
type History struct {
	mu    sync.RWMutex
	txs   []*Transaction
	stale bool
}

// NewHistory returns an empty history. Populate it with Run or Refresh.
func NewHistory() *History {
	return &History{}
}

func (h *History) replace(txs []*Transaction) {
	h.mu.Lock()
	h.txs = txs
	h.stale = false
	h.mu.Unlock()
}

func (h *History) markStale() {
	h.mu.Lock()
	h.stale = true
	h.mu.Unlock()
}

// List returns the current snapshot, newest first. The error return exists
// so History can stand in wherever a repository read is expected.
func (h *History) List(ctx context.Context) ([]*Transaction, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.txs, nil
}

// Stale reports whether the subscription has dropped since the last snapshot.
func (h *History) Stale() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.stale
}

// Run consumes realtime snapshots until ctx is cancelled, re-subscribing
// after a short backoff when the listener fails.
func (h *History) Run(ctx context.Context, w Watcher) {
	go h.run(ctx, w)
}

func (h *History) run(ctx context.Context, w Watcher) {
	for {
		snaps, errs := w.WatchTransactions(ctx)
	recv:
		for {
			select {
			case txs, ok := <-snaps:
				if !ok {
					// Closed stream is a drop too, even if the error
					// has not been read yet.
					h.markStale()
					break recv
				}
				h.replace(txs)
			case err := <-errs:
				log.Printf("transaction watch dropped: %v", err)
				h.markStale()
				break recv
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
}

// Refresh loads a one-off snapshot from the repository.
func (h *History) Refresh(ctx context.Context, repo Repository) error {
	txs, err := repo.List(ctx)
	if err != nil {
		h.markStale()
		return err
	}
	h.replace(txs)
	return nil
}

// Poll refreshes the history on a fixed interval until ctx is cancelled.
// Used in SQL mode, where the store has no push channel.
func (h *History) Poll(ctx context.Context, interval time.Duration, repo Repository) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := h.Refresh(ctx, repo); err != nil {
					log.Printf("transaction refresh failed: %v", err)
				}
			}
		}
	}()
}
