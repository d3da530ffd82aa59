package catalog

import "context"

// MenuRepository defines data access for menu items.
type MenuRepository interface {
	Create(ctx context.Context, item *MenuItem) error
	GetByID(ctx context.Context, id string) (*MenuItem, error)
	List(ctx context.Context) ([]*MenuItem, error)
	Update(ctx context.Context, item *MenuItem) error
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines data access for menu categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	List(ctx context.Context) ([]*Category, error)
	Delete(ctx context.Context, id string) error
}

// MenuWatcher streams full menu snapshots pushed by the backing store.
// Every delivery is a complete replacement of the collection, never a diff.
// Implemented by the Firestore repository only.
type MenuWatcher interface {
	WatchMenu(ctx context.Context) (<-chan []*MenuItem, <-chan error)
}

// CategoryWatcher streams full category snapshots.
type CategoryWatcher interface {
	WatchCategories(ctx context.Context) (<-chan []*Category, <-chan error)
}
