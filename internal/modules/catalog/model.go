package catalog

import (
	"fmt"
	"strings"
)

// Channel identifies the sales channel an order is rung up for. Partner
// platforms take a cut, so items may carry a higher price per channel.
type Channel string

const (
	ChannelDirect Channel = "DIRECT"
	ChannelGrab   Channel = "GRAB"
	ChannelGojek  Channel = "GOJEK"
)

// ParseChannel validates and normalises a channel string.
func ParseChannel(s string) (Channel, error) {
	switch c := Channel(strings.ToUpper(strings.TrimSpace(s))); c {
	case ChannelDirect, ChannelGrab, ChannelGojek:
		return c, nil
	default:
		return "", fmt.Errorf("invalid channel: %s (allowed: DIRECT, GRAB, GOJEK)", s)
	}
}

// MenuItem is a dish on the stall's menu. Prices are in whole rupiah.
// ChannelPrices holds per-channel overrides; a missing key means the base
// price applies on that channel.
type MenuItem struct {
	ID            string           `json:"id" firestore:"-"`
	Name          string           `json:"name" firestore:"name"`
	Category      string           `json:"category" firestore:"category"`
	Price         int64            `json:"price" firestore:"price"`
	ChannelPrices map[string]int64 `json:"channel_prices,omitempty" firestore:"channel_prices,omitempty"`
	ImageURL      string           `json:"image_url,omitempty" firestore:"image_url,omitempty"`
}

// Category is a menu grouping. Items reference it by name only; deleting a
// category leaves its items in place with an orphaned label.
type Category struct {
	ID   string `json:"id" firestore:"-"`
	Name string `json:"name" firestore:"name"`
}

// SaveItemRequest is the payload for creating or updating a menu item.
type SaveItemRequest struct {
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	Price         int64            `json:"price"`
	ChannelPrices map[string]int64 `json:"channel_prices,omitempty"`
	ImageURL      string           `json:"image_url,omitempty"`
}

// SaveCategoryRequest is the payload for creating a category.
type SaveCategoryRequest struct {
	Name string `json:"name"`
}
