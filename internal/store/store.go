package store

import (
	"github.com/bharatshaala/wishsync/internal/models"
)

// Store persists guest collections on the local device. Implementations
// are replace-whole-value: Write always serializes the entire sequence.
//
// Read never fails on absent or unparsable data; corrupt local state must
// never block usage, so both cases yield an empty sequence.
type Store interface {
	// Read returns the stored sequence for a collection kind.
	Read(kind models.CollectionKind) ([]models.CollectionItem, error)

	// Write replaces the stored sequence for a collection kind.
	Write(kind models.CollectionKind, items []models.CollectionItem) error

	// Clear removes the stored sequence for a collection kind.
	Clear(kind models.CollectionKind) error

	// Close releases resources.
	Close() error
}

// CurrentSchemaVersion for stored payloads. Payloads without a version
// field are treated as version 0 and migrated forward on the next write.
const CurrentSchemaVersion = 1
