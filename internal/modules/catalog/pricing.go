package catalog

// ResolvePrice returns the unit price for an item on a given channel: the
// channel override when one is configured, the base price otherwise.
// Pure function; never returns a negative value for a valid item.
func ResolvePrice(item *MenuItem, ch Channel) int64 {
	if override, ok := item.ChannelPrices[string(ch)]; ok {
		return override
	}
	return item.Price
}
