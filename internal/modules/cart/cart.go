package cart

import (
	"github.com/warungkapten/kasir-backend/internal/modules/catalog"
)

// Line is a cart entry for one menu item. Name and UnitPrice are snapshots
// taken when the item was added (or re-priced on a channel switch); later
// menu edits do not touch lines already in the cart.
type Line struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// Subtotal returns price × quantity for the line.
func (l *Line) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// ItemLookup resolves a menu item by id, typically from the menu snapshot
// cache. ok is false when the item no longer exists.
type ItemLookup func(id string) (*catalog.MenuItem, bool)

// Cart is the in-progress order for one cashier: an ordered set of lines,
// one per distinct menu item, priced for the current sales channel. A Cart
// is not safe for concurrent use; callers serialise access per cashier.
type Cart struct {
	channel catalog.Channel
	lines   []*Line
	index   map[string]*Line
}

// New returns an empty cart priced for the given channel.
func New(ch catalog.Channel) *Cart {
	return &Cart{channel: ch, index: make(map[string]*Line)}
}

// Channel returns the cart's current sales channel.
func (c *Cart) Channel() catalog.Channel {
	return c.channel
}

// AddItem puts one unit of the item in the cart. An existing line gains a
// unit and its price is re-resolved for the current channel; a new line
// starts at quantity 1.
func (c *Cart) AddItem(item *catalog.MenuItem) {
	price := catalog.ResolvePrice(item, c.channel)
	if line, ok := c.index[item.ID]; ok {
		line.Quantity++
		line.UnitPrice = price
		return
	}
	line := &Line{ItemID: item.ID, Name: item.Name, UnitPrice: price, Quantity: 1}
	c.lines = append(c.lines, line)
	c.index[item.ID] = line
}

// RemoveItem deletes the line entirely, whatever its quantity. Removing an
// absent id is a no-op.
func (c *Cart) RemoveItem(itemID string) {
	if _, ok := c.index[itemID]; !ok {
		return
	}
	delete(c.index, itemID)
	for i, line := range c.lines {
		if line.ItemID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// ChangeQuantity adjusts a line's quantity by delta, flooring at 1. The
// floor is deliberate: decrementing never removes a line, only RemoveItem
// does. Unknown ids are ignored.
func (c *Cart) ChangeQuantity(itemID string, delta int) {
	line, ok := c.index[itemID]
	if !ok {
		return
	}
	q := line.Quantity + delta
	if q < 1 {
		q = 1
	}
	line.Quantity = q
}

// SetChannel switches the sales channel and re-resolves every line's price
// against it, keeping quantities. Idempotent: repeating the same channel
// changes nothing. Lines whose item has vanished from the menu keep their
// last snapshot price.
func (c *Cart) SetChannel(ch catalog.Channel, lookup ItemLookup) {
	c.channel = ch
	for _, line := range c.lines {
		if item, ok := lookup(line.ItemID); ok {
			line.UnitPrice = catalog.ResolvePrice(item, ch)
		}
	}
}

// Total recomputes Σ price×quantity over all lines on every call. No
// running accumulator to keep honest.
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}

// Lines returns a deep copy of the cart's lines in insertion order.
func (c *Cart) Lines() []*Line {
	out := make([]*Line, len(c.lines))
	for i, line := range c.lines {
		cp := *line
		out[i] = &cp
	}
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Clear empties the cart. Called after a successful checkout.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[string]*Line)
}
