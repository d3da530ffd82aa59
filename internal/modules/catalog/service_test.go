package catalog

import (
	"context"
	"errors"
	"testing"
)

type fakeMenuRepo struct {
	items map[string]*MenuItem
}

func newFakeMenuRepo() *fakeMenuRepo { return &fakeMenuRepo{items: make(map[string]*MenuItem)} }

func (f *fakeMenuRepo) Create(ctx context.Context, item *MenuItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeMenuRepo) GetByID(ctx context.Context, id string) (*MenuItem, error) {
	if item, ok := f.items[id]; ok {
		return item, nil
	}
	return nil, errors.New("menu item not found")
}

func (f *fakeMenuRepo) List(ctx context.Context) ([]*MenuItem, error) {
	out := make([]*MenuItem, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeMenuRepo) Update(ctx context.Context, item *MenuItem) error {
	if _, ok := f.items[item.ID]; !ok {
		return errors.New("menu item not found")
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeMenuRepo) Delete(ctx context.Context, id string) error {
	delete(f.items, id)
	return nil
}

type fakeCategoryRepo struct {
	cats map[string]*Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{cats: make(map[string]*Category)}
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *Category) error {
	f.cats[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]*Category, error) {
	out := make([]*Category, 0, len(f.cats))
	for _, c := range f.cats {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	delete(f.cats, id)
	return nil
}

func TestCreateItem(t *testing.T) {
	menu := newFakeMenuRepo()
	svc := NewService(menu, newFakeCategoryRepo())
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, SaveItemRequest{
		Name:          "  Nasi Goreng  ",
		Category:      "Makanan",
		Price:         25000,
		ChannelPrices: map[string]int64{"grab": 30000},
	})
	if err != nil {
		t.Fatal(err)
	}
	if item.ID == "" {
		t.Error("id not assigned")
	}
	if item.Name != "Nasi Goreng" {
		t.Errorf("name = %q, want trimmed", item.Name)
	}
	if got := item.ChannelPrices["GRAB"]; got != 30000 {
		t.Errorf("channel price key not upper-cased: %v", item.ChannelPrices)
	}
	if _, ok := menu.items[item.ID]; !ok {
		t.Error("item not persisted")
	}
}

func TestCreateItemValidation(t *testing.T) {
	svc := NewService(newFakeMenuRepo(), newFakeCategoryRepo())
	ctx := context.Background()

	tests := []struct {
		name string
		req  SaveItemRequest
	}{
		{"missing name", SaveItemRequest{Price: 1000}},
		{"negative price", SaveItemRequest{Name: "Nasi", Price: -1}},
		{"negative channel price", SaveItemRequest{Name: "Nasi", Price: 1000, ChannelPrices: map[string]int64{"GRAB": -1}}},
		{"unknown channel", SaveItemRequest{Name: "Nasi", Price: 1000, ChannelPrices: map[string]int64{"SHOPEE": 1000}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateItem(ctx, tt.req); err == nil {
				t.Error("invalid request accepted")
			}
		})
	}
}

func TestUpdateItem(t *testing.T) {
	menu := newFakeMenuRepo()
	svc := NewService(menu, newFakeCategoryRepo())
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, SaveItemRequest{Name: "Es Teh", Price: 5000})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpdateItem(ctx, item.ID, SaveItemRequest{Name: "Es Teh Manis", Price: 6000})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Es Teh Manis" || updated.Price != 6000 {
		t.Errorf("updated = %+v", updated)
	}

	if _, err := svc.UpdateItem(ctx, "ghost", SaveItemRequest{Name: "X", Price: 1}); err == nil {
		t.Error("update of unknown item accepted")
	}
}

func TestCreateCategoryDeduplicates(t *testing.T) {
	svc := NewService(newFakeMenuRepo(), newFakeCategoryRepo())
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, SaveCategoryRequest{Name: "Minuman"}); err != nil {
		t.Fatal(err)
	}
	// Case-insensitive duplicate.
	if _, err := svc.CreateCategory(ctx, SaveCategoryRequest{Name: "minuman"}); err == nil {
		t.Error("duplicate category accepted")
	}
	if _, err := svc.CreateCategory(ctx, SaveCategoryRequest{Name: "  "}); err == nil {
		t.Error("blank category accepted")
	}
}

func TestDeleteCategoryLeavesItems(t *testing.T) {
	menu := newFakeMenuRepo()
	cats := newFakeCategoryRepo()
	svc := NewService(menu, cats)
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, SaveCategoryRequest{Name: "Makanan"})
	if err != nil {
		t.Fatal(err)
	}
	item, err := svc.CreateItem(ctx, SaveItemRequest{Name: "Nasi Goreng", Category: "Makanan", Price: 25000})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteCategory(ctx, c.ID); err != nil {
		t.Fatal(err)
	}
	got, err := svc.GetItem(ctx, item.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Category != "Makanan" {
		t.Errorf("item category = %q, want orphaned label kept", got.Category)
	}
}

func TestCacheSnapshots(t *testing.T) {
	cache := NewCache()

	if _, ok := cache.Item("nasi"); ok {
		t.Error("empty cache returned an item")
	}

	first := []*MenuItem{
		{ID: "nasi", Name: "Nasi Goreng", Price: 25000},
		{ID: "teh", Name: "Es Teh", Price: 5000},
	}
	cache.replaceMenu(first)
	cache.replaceCategories([]*Category{{ID: "c1", Name: "Makanan"}})

	if item, ok := cache.Item("nasi"); !ok || item.Price != 25000 {
		t.Errorf("Item(nasi) = %v, %v", item, ok)
	}
	if len(cache.Menu()) != 2 || len(cache.Categories()) != 1 {
		t.Errorf("menu %d, categories %d", len(cache.Menu()), len(cache.Categories()))
	}

	// A new snapshot fully replaces the old one, no merging.
	cache.replaceMenu([]*MenuItem{{ID: "teh", Name: "Es Teh", Price: 6000}})
	if _, ok := cache.Item("nasi"); ok {
		t.Error("replaced snapshot still serves removed item")
	}
	if item, _ := cache.Item("teh"); item.Price != 6000 {
		t.Errorf("Item(teh).Price = %d, want 6000", item.Price)
	}
}

func TestCacheStaleFlag(t *testing.T) {
	cache := NewCache()
	cache.replaceMenu([]*MenuItem{{ID: "teh", Name: "Es Teh", Price: 5000}})

	cache.markStale()
	if !cache.Stale() {
		t.Fatal("cache not stale after markStale")
	}
	// The last snapshot keeps serving while stale.
	if _, ok := cache.Item("teh"); !ok {
		t.Error("stale cache dropped its snapshot")
	}

	cache.replaceMenu([]*MenuItem{{ID: "teh", Name: "Es Teh", Price: 5000}})
	if cache.Stale() {
		t.Error("fresh snapshot did not clear the stale flag")
	}
}

// droppedMenuWatcher hands out an already-closed snapshot stream without
// delivering the error, the worst-case ordering for the consumer's select.
type droppedMenuWatcher struct{}

func (droppedMenuWatcher) WatchMenu(ctx context.Context) (<-chan []*MenuItem, <-chan error) {
	snaps := make(chan []*MenuItem)
	close(snaps)
	return snaps, make(chan error, 1)
}

func TestCacheMarksStaleWhenWatchCloses(t *testing.T) {
	cache := NewCache()
	cache.replaceMenu([]*MenuItem{{ID: "teh", Name: "Es Teh", Price: 5000}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cache.runMenu(ctx, droppedMenuWatcher{})

	if !cache.Stale() {
		t.Error("cache not stale after the watch stream closed")
	}
	if _, ok := cache.Item("teh"); !ok {
		t.Error("stale cache dropped its snapshot")
	}
}

func TestCacheRefresh(t *testing.T) {
	menu := newFakeMenuRepo()
	menu.Create(context.Background(), &MenuItem{ID: "nasi", Name: "Nasi Goreng", Price: 25000})
	cats := newFakeCategoryRepo()

	cache := NewCache()
	if err := cache.Refresh(context.Background(), menu, cats); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Item("nasi"); !ok {
		t.Error("refresh did not load the menu")
	}
}
