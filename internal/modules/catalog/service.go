package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service defines menu and category management business logic.
type Service interface {
	CreateItem(ctx context.Context, req SaveItemRequest) (*MenuItem, error)
	GetItem(ctx context.Context, id string) (*MenuItem, error)
	ListMenu(ctx context.Context) ([]*MenuItem, error)
	UpdateItem(ctx context.Context, id string, req SaveItemRequest) (*MenuItem, error)
	DeleteItem(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, req SaveCategoryRequest) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type service struct {
	menu       MenuRepository
	categories CategoryRepository
}

// NewService creates a new catalog service.
func NewService(menu MenuRepository, categories CategoryRepository) Service {
	return &service{menu: menu, categories: categories}
}

func validateItem(req SaveItemRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if req.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	for ch, p := range req.ChannelPrices {
		if _, err := ParseChannel(ch); err != nil {
			return err
		}
		if p < 0 {
			return fmt.Errorf("price for channel %s must not be negative", ch)
		}
	}
	return nil
}

// normalizeChannelPrices upper-cases channel keys so lookups by Channel
// constant always hit.
func normalizeChannelPrices(in map[string]int64) map[string]int64 {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]int64, len(in))
	for ch, p := range in {
		c, _ := ParseChannel(ch)
		out[string(c)] = p
	}
	return out
}

func (s *service) CreateItem(ctx context.Context, req SaveItemRequest) (*MenuItem, error) {
	if err := validateItem(req); err != nil {
		return nil, err
	}
	item := &MenuItem{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(req.Name),
		Category:      strings.TrimSpace(req.Category),
		Price:         req.Price,
		ChannelPrices: normalizeChannelPrices(req.ChannelPrices),
		ImageURL:      req.ImageURL,
	}
	if err := s.menu.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) GetItem(ctx context.Context, id string) (*MenuItem, error) {
	return s.menu.GetByID(ctx, id)
}

func (s *service) ListMenu(ctx context.Context) ([]*MenuItem, error) {
	return s.menu.List(ctx)
}

func (s *service) UpdateItem(ctx context.Context, id string, req SaveItemRequest) (*MenuItem, error) {
	if err := validateItem(req); err != nil {
		return nil, err
	}
	item, err := s.menu.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("menu item not found: %w", err)
	}
	item.Name = strings.TrimSpace(req.Name)
	item.Category = strings.TrimSpace(req.Category)
	item.Price = req.Price
	item.ChannelPrices = normalizeChannelPrices(req.ChannelPrices)
	item.ImageURL = req.ImageURL
	if err := s.menu.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) DeleteItem(ctx context.Context, id string) error {
	return s.menu.Delete(ctx, id)
}

func (s *service) CreateCategory(ctx context.Context, req SaveCategoryRequest) (*Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	existing, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if strings.EqualFold(c.Name, name) {
			return nil, fmt.Errorf("category %s already exists", name)
		}
	}
	c := &Category{ID: uuid.New().String(), Name: name}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.categories.List(ctx)
}

// DeleteCategory removes the category only. Items keep the category label
// they were saved with.
func (s *service) DeleteCategory(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}
