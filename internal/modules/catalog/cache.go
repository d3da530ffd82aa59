package catalog

import (
	"context"
	"log"
	"sync"
	"time"
)

// Cache keeps a read-only local copy of the menu and categories. Each
// snapshot pushed by the store fully replaces the previous copy; there is
// no merging. When the subscription fails the cache keeps serving the last
// snapshot and flags itself stale instead of blocking callers.
type Cache struct {
	mu         sync.RWMutex
	items      []*MenuItem
	byID       map[string]*MenuItem
	categories []*Category
	stale      bool
}

// NewCache returns an empty cache. Populate it with Run or Refresh.
func NewCache() *Cache {
	return &Cache{byID: make(map[string]*MenuItem)}
}

func (c *Cache) replaceMenu(items []*MenuItem) {
	byID := make(map[string]*MenuItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	c.mu.Lock()
	c.items = items
	c.byID = byID
	c.stale = false
	c.mu.Unlock()
}

func (c *Cache) replaceCategories(cats []*Category) {
	c.mu.Lock()
	c.categories = cats
	c.stale = false
	c.mu.Unlock()
}

func (c *Cache) markStale() {
	c.mu.Lock()
	c.stale = true
	c.mu.Unlock()
}

// Item looks up a menu item by id in the current snapshot.
func (c *Cache) Item(id string) (*MenuItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.byID[id]
	return item, ok
}

// Menu returns the current menu snapshot.
func (c *Cache) Menu() []*MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.items
}

// Categories returns the current category snapshot.
func (c *Cache) Categories() []*Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.categories
}

// Stale reports whether the subscription has dropped since the last snapshot.
func (c *Cache) Stale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stale
}

// Run consumes realtime snapshots until ctx is cancelled. A failed listener
// marks the cache stale and retries after a short backoff with a fresh
// subscription.
func (c *Cache) Run(ctx context.Context, menu MenuWatcher, cats CategoryWatcher) {
	go c.runMenu(ctx, menu)
	go c.runCategories(ctx, cats)
}

func (c *Cache) runMenu(ctx context.Context, w MenuWatcher) {
	for {
		snaps, errs := w.WatchMenu(ctx)
	recv:
		for {
			select {
			case items, ok := <-snaps:
				if !ok {
					// Closed stream is a drop too, even if the error
					// has not been read yet.
					c.markStale()
					break recv
				}
				c.replaceMenu(items)
			case err := <-errs:
				log.Printf("menu watch dropped: %v", err)
				c.markStale()
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

func (c *Cache) runCategories(ctx context.Context, w CategoryWatcher) {
	for {
		snaps, errs := w.WatchCategories(ctx)
	recv:
		for {
			select {
			case cats, ok := <-snaps:
				if !ok {
					c.markStale()
					break recv
				}
				c.replaceCategories(cats)
			case err := <-errs:
				log.Printf("category watch dropped: %v", err)
				c.markStale()
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

// Refresh loads a one-off snapshot from the repositories. Used at startup
// and by the polling loop when the store has no push channel.
func (c *Cache) Refresh(ctx context.Context, menu MenuRepository, cats CategoryRepository) error {
	items, err := menu.List(ctx)
	if err != nil {
		c.markStale()
		return err
	}
	categories, err := cats.List(ctx)
	if err != nil {
		c.markStale()
		return err
	}
	c.replaceMenu(items)
	c.replaceCategories(categories)
	return nil
}

// Poll refreshes the cache on a fixed interval until ctx is cancelled.
func (c *Cache) Poll(ctx context.Context, interval time.Duration, menu MenuRepository, cats CategoryRepository) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := c.Refresh(ctx, menu, cats); err != nil {
					log.Printf("menu refresh failed: %v", err)
				}
			}
		}
	}()
}
