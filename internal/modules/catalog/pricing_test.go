package catalog

import "testing"

func TestResolvePrice(t *testing.T) {
	item := &MenuItem{
		ID:    "nasi-goreng",
		Name:  "Nasi Goreng Kapten",
		Price: 25000,
		ChannelPrices: map[string]int64{
			"GRAB":  30000,
			"GOJEK": 29000,
		},
	}
	plain := &MenuItem{ID: "es-teh", Name: "Es Teh", Price: 5000}

	tests := []struct {
		name    string
		item    *MenuItem
		channel Channel
		want    int64
	}{
		{"direct uses base price", item, ChannelDirect, 25000},
		{"grab override", item, ChannelGrab, 30000},
		{"gojek override", item, ChannelGojek, 29000},
		{"no overrides falls back to base", plain, ChannelGrab, 5000},
		{"nil override map", plain, ChannelDirect, 5000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePrice(tt.item, tt.channel); got != tt.want {
				t.Errorf("ResolvePrice(%s, %s) = %d, want %d", tt.item.ID, tt.channel, got, tt.want)
			}
		})
	}
}

func TestResolvePriceZeroOverride(t *testing.T) {
	// A configured override of zero is an override, not a missing key.
	item := &MenuItem{ID: "promo", Price: 10000, ChannelPrices: map[string]int64{"GRAB": 0}}
	if got := ResolvePrice(item, ChannelGrab); got != 0 {
		t.Errorf("ResolvePrice with zero override = %d, want 0", got)
	}
}

func TestParseChannel(t *testing.T) {
	tests := []struct {
		in      string
		want    Channel
		wantErr bool
	}{
		{"DIRECT", ChannelDirect, false},
		{"grab", ChannelGrab, false},
		{"  Gojek  ", ChannelGojek, false},
		{"", "", true},
		{"SHOPEE", "", true},
	}
	for _, tt := range tests {
		got, err := ParseChannel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseChannel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseChannel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
