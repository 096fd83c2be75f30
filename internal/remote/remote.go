package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bharatshaala/wishsync/internal/events"
	"github.com/bharatshaala/wishsync/internal/models"
	"github.com/bharatshaala/wishsync/internal/transport"
)

// Store issues requests against the per-user collection resource. It is a
// stateless transformer: every call is one network round-trip with no
// retry; retry policy belongs to the caller.
type Store struct {
	transport transport.Transport
	kind      models.CollectionKind
	logger    *events.Logger
}

// NewStore creates a remote adapter for one collection kind.
func NewStore(t transport.Transport, kind models.CollectionKind, logger *events.Logger) *Store {
	return &Store{
		transport: t,
		kind:      kind,
		logger: logger.WithFields(map[string]interface{}{
			"component": "remote_store",
			"kind":      string(kind),
		}),
	}
}

// Fetch returns the user's collection.
func (s *Store) Fetch(ctx context.Context, userID string) ([]models.CollectionItem, error) {
	resp, err := s.transport.GetJSON(ctx, fmt.Sprintf("/%s/%s", s.kind, userID))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.kind, err)
	}

	raw, ok := resp["items"]
	if !ok {
		return nil, nil
	}

	// Round-trip through JSON to decode the loosely typed response.
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("re-marshal items: %w", err)
	}

	var items []models.CollectionItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}

	return items, nil
}

// Add inserts an item into the user's collection. A duplicate ID on the
// server is idempotent success, not an error.
func (s *Store) Add(ctx context.Context, userID string, item models.CollectionItem) error {
	_, err := s.transport.PostJSON(ctx, fmt.Sprintf("/%s/add", s.kind), map[string]interface{}{
		"userId":  userID,
		"product": item,
	})
	if err != nil {
		if isStatus(err, http.StatusConflict) {
			s.logger.WithField("item_id", item.ID).Debug("Item already on server")
			return nil
		}
		return fmt.Errorf("add to %s: %w", s.kind, err)
	}
	return nil
}

// Remove deletes an item from the user's collection. A missing ID on the
// server is success.
func (s *Store) Remove(ctx context.Context, userID, itemID string) error {
	_, err := s.transport.DeleteJSON(ctx, fmt.Sprintf("/%s/remove", s.kind), map[string]interface{}{
		"userId":    userID,
		"productId": itemID,
	})
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			s.logger.WithField("item_id", itemID).Debug("Item already absent on server")
			return nil
		}
		return fmt.Errorf("remove from %s: %w", s.kind, err)
	}
	return nil
}

// Clear empties the user's collection.
func (s *Store) Clear(ctx context.Context, userID string) error {
	_, err := s.transport.DeleteJSON(ctx, fmt.Sprintf("/%s/clear", s.kind), map[string]interface{}{
		"userId": userID,
	})
	if err != nil {
		return fmt.Errorf("clear %s: %w", s.kind, err)
	}
	return nil
}

func isStatus(err error, status int) bool {
	var apiErr *models.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
