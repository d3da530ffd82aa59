package cart

import (
	"sync"

	"github.com/warungkapten/kasir-backend/internal/modules/catalog"
)

// Sessions holds one live cart per cashier. Carts never leave process
// memory: navigating away or logging out simply abandons the state.
type Sessions struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewSessions creates an empty cart registry.
func NewSessions() *Sessions {
	return &Sessions{carts: make(map[string]*Cart)}
}

// With runs fn against the cashier's cart under the registry lock, creating
// an empty direct-channel cart on first use. All cart mutations go through
// here so a cart is only ever touched by one request at a time.
func (s *Sessions) With(cashierID string, fn func(*Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[cashierID]
	if !ok {
		c = New(catalog.ChannelDirect)
		s.carts[cashierID] = c
	}
	return fn(c)
}

// Clear drops the cashier's cart.
func (s *Sessions) Clear(cashierID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[cashierID]; ok {
		c.Clear()
	}
}
