package cart

import (
	"fmt"

	"github.com/warungkapten/kasir-backend/internal/modules/catalog"
)

// View is the serialisable state of a cashier's cart.
type View struct {
	Channel catalog.Channel `json:"channel"`
	Lines   []*Line         `json:"lines"`
	Total   int64           `json:"total"`
}

// Service drives a cashier's cart from discrete POS actions.
type Service interface {
	Get(cashierID string) View
	AddItem(cashierID, itemID string) (View, error)
	ChangeQuantity(cashierID, itemID string, delta int) (View, error)
	RemoveItem(cashierID, itemID string) View
	SetChannel(cashierID string, ch catalog.Channel) View
	Clear(cashierID string)
}

type service struct {
	sessions *Sessions
	menu     *catalog.Cache
}

// NewService creates a cart service over the session registry, resolving
// items and prices from the menu snapshot cache.
func NewService(sessions *Sessions, menu *catalog.Cache) Service {
	return &service{sessions: sessions, menu: menu}
}

func view(c *Cart) View {
	return View{Channel: c.Channel(), Lines: c.Lines(), Total: c.Total()}
}

func (s *service) Get(cashierID string) View {
	var v View
	_ = s.sessions.With(cashierID, func(c *Cart) error {
		v = view(c)
		return nil
	})
	return v
}

func (s *service) AddItem(cashierID, itemID string) (View, error) {
	var v View
	err := s.sessions.With(cashierID, func(c *Cart) error {
		item, ok := s.menu.Item(itemID)
		if !ok {
			return fmt.Errorf("menu item %s not found", itemID)
		}
		c.AddItem(item)
		v = view(c)
		return nil
	})
	return v, err
}

func (s *service) ChangeQuantity(cashierID, itemID string, delta int) (View, error) {
	var v View
	err := s.sessions.With(cashierID, func(c *Cart) error {
		c.ChangeQuantity(itemID, delta)
		v = view(c)
		return nil
	})
	return v, err
}

func (s *service) RemoveItem(cashierID, itemID string) View {
	var v View
	_ = s.sessions.With(cashierID, func(c *Cart) error {
		c.RemoveItem(itemID)
		v = view(c)
		return nil
	})
	return v
}

func (s *service) SetChannel(cashierID string, ch catalog.Channel) View {
	var v View
	_ = s.sessions.With(cashierID, func(c *Cart) error {
		c.SetChannel(ch, s.menu.Item)
		v = view(c)
		return nil
	})
	return v
}

func (s *service) Clear(cashierID string) {
	s.sessions.Clear(cashierID)
}
