package store

import (
	"sync"

	"github.com/bharatshaala/wishsync/internal/models"
)

// MockStore provides an in-memory Store for testing.
type MockStore struct {
	mu   sync.Mutex
	data map[models.CollectionKind][]models.CollectionItem

	// Error injection
	ReadError  error
	WriteError error
	ClearError error

	// Call tracking
	WriteCalls int
	ClearCalls int
}

// NewMockStore creates an empty mock store.
func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[models.CollectionKind][]models.CollectionItem),
	}
}

// Seed sets the stored sequence for a kind directly.
func (m *MockStore) Seed(kind models.CollectionKind, items []models.CollectionItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[kind] = models.CloneItems(items)
}

// Read returns the stored sequence.
func (m *MockStore) Read(kind models.CollectionKind) ([]models.CollectionItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadError != nil {
		return nil, m.ReadError
	}
	return models.CloneItems(m.data[kind]), nil
}

// Write replaces the stored sequence.
func (m *MockStore) Write(kind models.CollectionKind, items []models.CollectionItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WriteCalls++
	if m.WriteError != nil {
		return m.WriteError
	}
	m.data[kind] = models.CloneItems(items)
	return nil
}

// Clear removes the stored sequence.
func (m *MockStore) Clear(kind models.CollectionKind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearError != nil {
		return m.ClearError
	}
	delete(m.data, kind)
	return nil
}

// Close is a no-op.
func (m *MockStore) Close() error {
	return nil
}

var _ Store = (*MockStore)(nil)
