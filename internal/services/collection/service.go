package collection

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bharatshaala/wishsync/internal/events"
	"github.com/bharatshaala/wishsync/internal/models"
)

// AuthSource provides the authentication signal and the current session.
type AuthSource interface {
	IsAuthenticated() bool
	Session() (*models.Session, error)
}

// LocalStore is the on-device backing store for guest collections.
type LocalStore interface {
	Read(kind models.CollectionKind) ([]models.CollectionItem, error)
	Write(kind models.CollectionKind, items []models.CollectionItem) error
	Clear(kind models.CollectionKind) error
}

// RemoteStore is the per-user backing resource for authenticated
// collections. Every call is one attempt; failures surface to the caller.
type RemoteStore interface {
	Fetch(ctx context.Context, userID string) ([]models.CollectionItem, error)
	Add(ctx context.Context, userID string, item models.CollectionItem) error
	Remove(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error
}

// Service is the in-memory reactive cache for one user collection and the
// single writable copy of its membership for the running session. It picks
// the backing store per call from the authentication signal and runs the
// one-shot local→remote merge at login.
type Service struct {
	kind     models.CollectionKind
	local    LocalStore
	remote   RemoteStore
	auth     AuthSource
	notifier events.Notifier
	logger   *events.Logger

	// opMu serializes mutations and is held across the backing-store
	// call, so a second mutation against any item cannot start until the
	// in-flight commit lands. This is what keeps add(X);remove(X) races
	// ordered.
	opMu sync.Mutex

	// stateMu guards the observable fields only, so readers never block
	// on an in-flight network call.
	stateMu sync.RWMutex
	items   []models.CollectionItem
	loading bool
	lastErr error

	// merged guards the login drain: at most once per sign-in, reset on
	// every transition back to unauthenticated.
	merged bool

	subMu sync.Mutex
	subs  []func()
}

// NewService creates a collection service.
func NewService(
	kind models.CollectionKind,
	local LocalStore,
	remote RemoteStore,
	auth AuthSource,
	notifier events.Notifier,
	logger *events.Logger,
) *Service {
	return &Service{
		kind:     kind,
		local:    local,
		remote:   remote,
		auth:     auth,
		notifier: notifier,
		logger: logger.WithFields(map[string]interface{}{
			"service": "collection",
			"kind":    string(kind),
		}),
	}
}

// Kind returns the collection kind.
func (s *Service) Kind() models.CollectionKind {
	return s.kind
}

// Subscribe registers a callback invoked after every committed state
// change.
func (s *Service) Subscribe(fn func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subs = append(s.subs, fn)
}

// Load populates the cache from the backing store for the current
// authentication mode. Call once at startup.
func (s *Service) Load(ctx context.Context) {
	if s.auth.IsAuthenticated() {
		s.Refresh(ctx)
		return
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	items, err := s.local.Read(s.kind)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read local store")
	}
	s.setState(items, false, nil)
	s.publish()
}

// Add inserts an item. It reports true when the collection changed; a
// missing ID or an existing entry with the same ID is a no-op.
func (s *Service) Add(ctx context.Context, item models.CollectionItem) bool {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.setError(nil)

	if err := item.Validate(); err != nil {
		s.setError(err)
		return false
	}

	if s.contains(item.ID) {
		s.emit(outcomeDuplicate)
		return false
	}

	item.AddedAt = time.Now().UTC()
	next := append(models.CloneItems(s.snapshot()), item)

	if ok := s.persist(ctx, opAdd, item, next, false); !ok {
		return false
	}

	s.setItems(next)
	s.emit(outcomeAdded)
	s.publish()
	return true
}

// Remove deletes an item by ID. Removing an absent ID is a no-op.
//
// Against the remote store the removal is optimistic: the cache drops the
// item before the round-trip and is not restored on failure; the error is
// surfaced and a Refresh is the recovery path.
func (s *Service) Remove(ctx context.Context, itemID string) bool {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.setError(nil)

	if !s.contains(itemID) {
		s.emit(outcomeAbsent)
		return false
	}

	next := make([]models.CollectionItem, 0, len(s.snapshot())-1)
	for _, it := range s.snapshot() {
		if it.ID != itemID {
			next = append(next, it)
		}
	}

	if s.auth.IsAuthenticated() {
		// Optimistic: the cache changes first.
		s.setItems(next)
		s.publish()

		session, err := s.auth.Session()
		if err != nil {
			s.setError(err)
			s.emit(outcomeRemoveFailed)
			return true
		}

		s.setLoading(true)
		err = s.remote.Remove(ctx, session.UserID, itemID)
		s.setLoading(false)

		if err != nil {
			s.logger.WithError(err).WithField("item_id", itemID).Error("Remote remove failed")
			s.setError(err)
			s.emit(outcomeRemoveFailed)
			return true
		}

		s.emit(outcomeRemoved)
		return true
	}

	if err := s.local.Write(s.kind, next); err != nil {
		s.logger.WithError(err).Error("Local write failed")
		s.setError(err)
		s.emit(outcomeRemoveFailed)
		return false
	}

	s.setItems(next)
	s.emit(outcomeRemoved)
	s.publish()
	return true
}

// Toggle adds the item when absent and removes it when present.
func (s *Service) Toggle(ctx context.Context, item models.CollectionItem) bool {
	if s.Contains(item.ID) {
		return s.Remove(ctx, item.ID)
	}
	return s.Add(ctx, item)
}

// Clear empties the collection. It reports true unless the backing store
// rejected the write, in which case the cache is unchanged.
func (s *Service) Clear(ctx context.Context) bool {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.setError(nil)

	if ok := s.persist(ctx, opClear, models.CollectionItem{}, nil, false); !ok {
		return false
	}

	s.setItems(nil)
	s.emit(outcomeCleared)
	s.publish()
	return true
}

// Refresh re-fetches the collection from the remote store. It is a no-op
// for guests.
func (s *Service) Refresh(ctx context.Context) bool {
	if !s.auth.IsAuthenticated() {
		return false
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	return s.refreshLocked(ctx)
}

func (s *Service) refreshLocked(ctx context.Context) bool {
	s.setError(nil)

	session, err := s.auth.Session()
	if err != nil {
		s.setError(err)
		return false
	}

	s.setLoading(true)
	items, err := s.remote.Fetch(ctx, session.UserID)
	s.setLoading(false)

	if err != nil {
		s.logger.WithError(err).Error("Remote fetch failed")
		s.setError(err)
		s.emit(outcomeFetchFailed)
		return false
	}

	s.setItems(items)
	s.publish()
	return true
}

// Items returns a snapshot of the collection in insertion order.
func (s *Service) Items() []models.CollectionItem {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return models.CloneItems(s.items)
}

// Loading reports whether a remote-backed operation is in flight.
func (s *Service) Loading() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.loading
}

// Err returns the last failure, cleared at the start of every operation.
func (s *Service) Err() error {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.lastErr
}

// Contains reports whether an item ID is in the collection.
func (s *Service) Contains(itemID string) bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	for _, it := range s.items {
		if it.ID == itemID {
			return true
		}
	}
	return false
}

// Count returns the number of items in the collection.
func (s *Service) Count() int {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return len(s.items)
}

// IsEmpty reports whether the collection has no items.
func (s *Service) IsEmpty() bool {
	return s.Count() == 0
}

// ItemsByCategory returns the items matching a category, case-insensitive.
func (s *Service) ItemsByCategory(category string) []models.CollectionItem {
	return s.filter(func(it models.CollectionItem) bool {
		return strings.EqualFold(it.Category, category)
	})
}

// ItemsByMarket returns the items matching a market, case-insensitive.
func (s *Service) ItemsByMarket(market string) []models.CollectionItem {
	return s.filter(func(it models.CollectionItem) bool {
		return strings.EqualFold(it.Market, market)
	})
}

func (s *Service) filter(keep func(models.CollectionItem) bool) []models.CollectionItem {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	var out []models.CollectionItem
	for _, it := range s.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// mutation kinds for persist
type op int

const (
	opAdd op = iota
	opClear
)

// persist commits a mutation to the active backing store without touching
// the cache. The caller applies the cache change only after persist
// reports success, which is what makes add and clear rollback-safe. With
// quiet set, failures surface through the error field but emit no
// notification (bulk operations report one summary instead).
func (s *Service) persist(ctx context.Context, o op, item models.CollectionItem, next []models.CollectionItem, quiet bool) bool {
	if s.auth.IsAuthenticated() {
		session, err := s.auth.Session()
		if err != nil {
			s.setError(err)
			s.emitFailure(o, quiet)
			return false
		}

		s.setLoading(true)
		switch o {
		case opAdd:
			err = s.remote.Add(ctx, session.UserID, item)
		case opClear:
			err = s.remote.Clear(ctx, session.UserID)
		}
		s.setLoading(false)

		if err != nil {
			s.logger.WithError(err).Error("Remote mutation failed")
			s.setError(err)
			s.emitFailure(o, quiet)
			return false
		}
		return true
	}

	var err error
	switch o {
	case opAdd:
		err = s.local.Write(s.kind, next)
	case opClear:
		err = s.local.Clear(s.kind)
	}
	if err != nil {
		s.logger.WithError(err).Error("Local write failed")
		s.setError(err)
		s.emitFailure(o, quiet)
		return false
	}
	return true
}

func (s *Service) emitFailure(o op, quiet bool) {
	if quiet {
		return
	}
	switch o {
	case opAdd:
		s.emit(outcomeAddFailed)
	case opClear:
		s.emit(outcomeClearFailed)
	}
}

// snapshot returns the items slice without copying; callers under opMu
// must not mutate it in place.
func (s *Service) snapshot() []models.CollectionItem {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.items
}

func (s *Service) contains(itemID string) bool {
	for _, it := range s.snapshot() {
		if it.ID == itemID {
			return true
		}
	}
	return false
}

func (s *Service) setItems(items []models.CollectionItem) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.items = items
}

func (s *Service) setLoading(v bool) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.loading = v
}

func (s *Service) setError(err error) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.lastErr = err
}

func (s *Service) setState(items []models.CollectionItem, loading bool, err error) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.items = items
	s.loading = loading
	s.lastErr = err
}

func (s *Service) publish() {
	s.subMu.Lock()
	subs := append([]func(){}, s.subs...)
	s.subMu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
