package catalog

import (
	"context"

	"cloud.google.com/go/firestore"
)

const (
	menuCollection     = "menu"
	categoryCollection = "categories"
)

type firestoreMenuRepo struct{ client *firestore.Client }

// NewFirestoreMenuRepository creates a Firestore-backed menu repository.
func NewFirestoreMenuRepository(client *firestore.Client) MenuRepository {
	return &firestoreMenuRepo{client: client}
}

func (r *firestoreMenuRepo) Create(ctx context.Context, item *MenuItem) error {
	_, err := r.client.Collection(menuCollection).Doc(item.ID).Set(ctx, item)
	return err
}

func (r *firestoreMenuRepo) GetByID(ctx context.Context, id string) (*MenuItem, error) {
	doc, err := r.client.Collection(menuCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, err
	}
	item := &MenuItem{}
	if err := doc.DataTo(item); err != nil {
		return nil, err
	}
	item.ID = doc.Ref.ID
	return item, nil
}

func (r *firestoreMenuRepo) List(ctx context.Context) ([]*MenuItem, error) {
	docs, err := r.client.Collection(menuCollection).
		OrderBy("name", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	items := make([]*MenuItem, 0, len(docs))
	for _, doc := range docs {
		item := &MenuItem{}
		if err := doc.DataTo(item); err != nil {
			return nil, err
		}
		item.ID = doc.Ref.ID
		items = append(items, item)
	}
	return items, nil
}

func (r *firestoreMenuRepo) Update(ctx context.Context, item *MenuItem) error {
	_, err := r.client.Collection(menuCollection).Doc(item.ID).Set(ctx, item)
	return err
}

func (r *firestoreMenuRepo) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(menuCollection).Doc(id).Delete(ctx)
	return err
}

// WatchMenu subscribes to the menu collection. Each delivery is the full
// collection ordered by name; the stream ends when ctx is cancelled or the
// listener fails, in which case the error channel carries the cause.
func (r *firestoreMenuRepo) WatchMenu(ctx context.Context) (<-chan []*MenuItem, <-chan error) {
	out := make(chan []*MenuItem)
	errc := make(chan error, 1)
	iter := r.client.Collection(menuCollection).
		OrderBy("name", firestore.Asc).
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
			items := make([]*MenuItem, 0, len(docs))
			for _, doc := range docs {
				item := &MenuItem{}
				if err := doc.DataTo(item); err != nil {
					continue
				}
				item.ID = doc.Ref.ID
				items = append(items, item)
			}
			select {
			case out <- items:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc
}

type firestoreCategoryRepo struct{ client *firestore.Client }

// NewFirestoreCategoryRepository creates a Firestore-backed category repository.
func NewFirestoreCategoryRepository(client *firestore.Client) CategoryRepository {
	return &firestoreCategoryRepo{client: client}
}

func (r *firestoreCategoryRepo) Create(ctx context.Context, c *Category) error {
	_, err := r.client.Collection(categoryCollection).Doc(c.ID).Set(ctx, c)
	return err
}

func (r *firestoreCategoryRepo) List(ctx context.Context) ([]*Category, error) {
	docs, err := r.client.Collection(categoryCollection).
		OrderBy("name", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	cats := make([]*Category, 0, len(docs))
	for _, doc := range docs {
		c := &Category{}
		if err := doc.DataTo(c); err != nil {
			return nil, err
		}
		c.ID = doc.Ref.ID
		cats = append(cats, c)
	}
	return cats, nil
}

func (r *firestoreCategoryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(categoryCollection).Doc(id).Delete(ctx)
	return err
}

// WatchCategories subscribes to the categories collection, full snapshots only.
func (r *firestoreCategoryRepo) WatchCategories(ctx context.Context) (<-chan []*Category, <-chan error) {
	out := make(chan []*Category)
	errc := make(chan error, 1)
	iter := r.client.Collection(categoryCollection).
		OrderBy("name", firestore.Asc).
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
			cats := make([]*Category, 0, len(docs))
			for _, doc := range docs {
				c := &Category{}
				if err := doc.DataTo(c); err != nil {
					continue
				}
				c.ID = doc.Ref.ID
				cats = append(cats, c)
			}
			select {
			case out <- cats:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc
}
