package testutil

import (
	"context"
	"sync"

	"github.com/bharatshaala/wishsync/internal/models"
)

// StaticAuth is a controllable authentication signal for tests.
type StaticAuth struct {
	mu            sync.Mutex
	Authenticated bool
	UserID        string
}

// SetAuthenticated flips the signal. It does not fire watchers; tests
// drive the collection watcher directly.
func (a *StaticAuth) SetAuthenticated(v bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Authenticated = v
}

// IsAuthenticated reports the configured signal.
func (a *StaticAuth) IsAuthenticated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Authenticated
}

// Session returns the configured session when authenticated.
func (a *StaticAuth) Session() (*models.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.Authenticated {
		return nil, models.ErrNotAuthenticated
	}
	return &models.Session{UserID: a.UserID, Token: "test-token"}, nil
}

// MockRemote is an in-memory remote collection resource with per-item
// error injection.
type MockRemote struct {
	mu    sync.Mutex
	items map[string][]models.CollectionItem // userID -> collection

	// Error injection
	FetchError  error
	RemoveError error
	ClearError  error
	AddErrors   map[string]error // itemID -> error

	// Call tracking
	FetchCalls  int
	AddCalls    int
	RemoveCalls int
	ClearCalls  int
}

// NewMockRemote creates an empty mock remote store.
func NewMockRemote() *MockRemote {
	return &MockRemote{
		items:     make(map[string][]models.CollectionItem),
		AddErrors: make(map[string]error),
	}
}

// Seed sets a user's server-side collection directly.
func (m *MockRemote) Seed(userID string, items []models.CollectionItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[userID] = models.CloneItems(items)
}

// ServerItems returns a user's server-side collection.
func (m *MockRemote) ServerItems(userID string) []models.CollectionItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.CloneItems(m.items[userID])
}

// Fetch returns the user's collection.
func (m *MockRemote) Fetch(ctx context.Context, userID string) ([]models.CollectionItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchCalls++
	if m.FetchError != nil {
		return nil, m.FetchError
	}
	return models.CloneItems(m.items[userID]), nil
}

// Add inserts an item; a duplicate ID is idempotent success.
func (m *MockRemote) Add(ctx context.Context, userID string, item models.CollectionItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddCalls++
	if err := m.AddErrors[item.ID]; err != nil {
		return err
	}
	for _, it := range m.items[userID] {
		if it.ID == item.ID {
			return nil
		}
	}
	m.items[userID] = append(m.items[userID], item)
	return nil
}

// Remove deletes an item; a missing ID is success.
func (m *MockRemote) Remove(ctx context.Context, userID, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveCalls++
	if m.RemoveError != nil {
		return m.RemoveError
	}
	kept := m.items[userID][:0]
	for _, it := range m.items[userID] {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	m.items[userID] = kept
	return nil
}

// Clear empties the user's collection.
func (m *MockRemote) Clear(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearError != nil {
		return m.ClearError
	}
	delete(m.items, userID)
	return nil
}
