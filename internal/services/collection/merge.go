package collection

import (
	"context"
	"time"

	"github.com/bharatshaala/wishsync/internal/models"
)

// HandleAuthChange is the edge-triggered watcher for the authentication
// signal. Register it with the auth service; prev and cur always differ.
//
// On sign-in it drains the guest collection into the remote store exactly
// once, then refreshes the cache from the server. On sign-out it resets
// the merge guard and falls back to the (now empty) guest store.
func (s *Service) HandleAuthChange(prev, cur bool, session *models.Session) {
	ctx := context.Background()

	if !cur {
		s.opMu.Lock()
		defer s.opMu.Unlock()

		s.merged = false
		items, err := s.local.Read(s.kind)
		if err != nil {
			s.logger.WithError(err).Warn("Failed to read local store")
		}
		s.setState(items, false, nil)
		s.publish()
		return
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.merged {
		s.merged = true
		s.mergeLocked(ctx, session)
	}

	s.refreshLocked(ctx)
}

// mergeLocked drains the guest collection into the remote store: every
// item is added in insertion order with notifications suppressed, one
// item's failure does not abort the rest, and the local store is cleared
// afterwards. Exactly one summary notification is emitted, and only when
// there was something to merge.
func (s *Service) mergeLocked(ctx context.Context, session *models.Session) {
	local, err := s.local.Read(s.kind)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read local store for merge")
	}
	if len(local) == 0 {
		return
	}

	s.logger.WithField("items", len(local)).Info("Merging guest collection")
	s.setLoading(true)
	defer s.setLoading(false)

	failed := 0
	for _, item := range local {
		if err := s.remote.Add(ctx, session.UserID, item); err != nil {
			failed++
			s.logger.WithError(&models.SyncError{
				Code:   models.ErrCodeNetwork,
				Kind:   s.kind,
				ItemID: item.ID,
				Err:    err,
			}).Warn("Merge add failed, continuing")
		}
	}

	if err := s.local.Clear(s.kind); err != nil {
		s.logger.WithError(err).Warn("Failed to clear local store after merge")
	}

	if failed > 0 {
		s.logger.WithFields(map[string]interface{}{
			"merged": len(local) - failed,
			"failed": failed,
		}).Warn("Guest collection partially merged")
		s.emit(outcomeMergePartial)
		return
	}

	s.logger.WithField("merged", len(local)).Info("Guest collection merged")
	s.emit(outcomeMerged)
}

// MoveAllTo transfers every item into the destination collection as a
// bulk operation: per-item notifications are suppressed and one summary
// outcome is emitted. Items that fail to land in the destination stay put.
func (s *Service) MoveAllTo(ctx context.Context, dest *Service) bool {
	items := s.Items()
	if len(items) == 0 {
		return false
	}

	moved := make(map[string]bool, len(items))
	for _, item := range items {
		if dest.addQuiet(ctx, item) {
			moved[item.ID] = true
		}
	}

	for id := range moved {
		s.removeQuiet(ctx, id)
	}

	if len(moved) < len(items) {
		s.emit(outcomeMovePartial)
		return false
	}

	s.emit(outcomeMoved)
	return true
}

// addQuiet is Add with notifications suppressed. A duplicate counts as
// already in the desired state.
func (s *Service) addQuiet(ctx context.Context, item models.CollectionItem) bool {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.setError(nil)

	if err := item.Validate(); err != nil {
		s.setError(err)
		return false
	}

	if s.contains(item.ID) {
		return true
	}

	// A moved item keeps its original insertion timestamp.
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}
	next := append(models.CloneItems(s.snapshot()), item)

	if ok := s.persist(ctx, opAdd, item, next, true); !ok {
		return false
	}

	s.setItems(next)
	s.publish()
	return true
}

// removeQuiet is Remove with notifications suppressed.
func (s *Service) removeQuiet(ctx context.Context, itemID string) bool {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.contains(itemID) {
		return false
	}

	next := make([]models.CollectionItem, 0, len(s.snapshot())-1)
	for _, it := range s.snapshot() {
		if it.ID != itemID {
			next = append(next, it)
		}
	}

	if s.auth.IsAuthenticated() {
		s.setItems(next)
		s.publish()

		session, err := s.auth.Session()
		if err != nil {
			s.setError(err)
			return true
		}

		s.setLoading(true)
		err = s.remote.Remove(ctx, session.UserID, itemID)
		s.setLoading(false)
		if err != nil {
			s.setError(err)
		}
		return true
	}

	if err := s.local.Write(s.kind, next); err != nil {
		s.setError(err)
		return false
	}

	s.setItems(next)
	s.publish()
	return true
}
