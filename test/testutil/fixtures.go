package testutil

import (
	"fmt"
	"time"

	"github.com/bharatshaala/wishsync/internal/models"
)

// Item builds a collection item fixture.
func Item(id string) models.CollectionItem {
	return models.CollectionItem{
		ID:       id,
		Name:     "Product " + id,
		Price:    499,
		Image:    fmt.Sprintf("https://cdn.example.com/%s.jpg", id),
		Category: "clothing",
		Vendor:   "vendor-1",
		Market:   "pinkcity",
		InStock:  true,
		AddedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Items builds several item fixtures.
func Items(ids ...string) []models.CollectionItem {
	out := make([]models.CollectionItem, 0, len(ids))
	for _, id := range ids {
		out = append(out, Item(id))
	}
	return out
}
