package models

import (
	"strings"
	"time"
)

// CollectionKind identifies which user collection an item belongs to.
type CollectionKind string

const (
	KindWishlist CollectionKind = "wishlist"
	KindCart     CollectionKind = "cart"
)

// StorageKey returns the namespaced on-device storage key for the kind.
func (k CollectionKind) StorageKey() string {
	return "bharatshaala_" + string(k)
}

// Valid reports whether the kind is a known collection kind.
func (k CollectionKind) Valid() bool {
	return k == KindWishlist || k == KindCart
}

// CollectionItem is a product reference saved in a user collection.
//
// Display metadata is denormalized at insertion time and never re-fetched
// from the product catalog.
type CollectionItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
	Category string  `json:"category,omitempty"`
	Vendor   string  `json:"vendor,omitempty"`
	Market   string  `json:"market,omitempty"`
	InStock  bool    `json:"inStock"`

	// AddedAt is stamped by the writer at insertion and never mutated.
	AddedAt time.Time `json:"addedAt"`
}

// Validate checks the item can be stored. The ID is the dedup key and is
// the only required field.
func (i *CollectionItem) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return ErrInvalidItem
	}
	return nil
}

// CloneItems returns a copy of the slice so callers can hold a snapshot
// without observing later mutations.
func CloneItems(items []CollectionItem) []CollectionItem {
	if items == nil {
		return nil
	}
	out := make([]CollectionItem, len(items))
	copy(out, items)
	return out
}
