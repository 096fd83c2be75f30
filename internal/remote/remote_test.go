package remote_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bharatshaala/wishsync/internal/models"
	"github.com/bharatshaala/wishsync/internal/remote"
	"github.com/bharatshaala/wishsync/internal/transport"
	"github.com/bharatshaala/wishsync/test/testutil"
)

func newStore(t *testing.T) (*remote.Store, *transport.MockTransport) {
	t.Helper()
	mock := transport.NewMockTransport()
	return remote.NewStore(mock, models.KindWishlist, testutil.NewTestLogger()), mock
}

func TestFetch(t *testing.T) {
	s, mock := newStore(t)

	mock.AddResponse("GET", "/wishlist/u1", map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"id": "p1", "name": "Kurta", "price": 499.0, "inStock": true},
			map[string]interface{}{"id": "p2", "name": "Bangles", "price": 799.0},
		},
	})

	items, err := s.Fetch(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, "Kurta", items[0].Name)
	assert.Equal(t, 499.0, items[0].Price)
	assert.True(t, items[0].InStock)
	assert.Equal(t, "p2", items[1].ID)
}

func TestFetchEmptyResponse(t *testing.T) {
	s, mock := newStore(t)

	mock.AddResponse("GET", "/wishlist/u1", map[string]interface{}{})

	items, err := s.Fetch(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFetchFailure(t *testing.T) {
	s, mock := newStore(t)

	mock.AddError("GET", "/wishlist/u1", &models.APIError{
		Code: models.ErrCodeServerError, Message: "boom", StatusCode: 500,
	})

	_, err := s.Fetch(context.Background(), "u1")
	require.Error(t, err)

	var apiErr *models.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsServerError())
}

func TestAdd(t *testing.T) {
	s, mock := newStore(t)

	mock.AddResponse("POST", "/wishlist/add", map[string]interface{}{"success": true})

	item := testutil.Item("p1")
	require.NoError(t, s.Add(context.Background(), "u1", item))

	reqs := mock.RequestsFor("POST", "/wishlist/add")
	require.Len(t, reqs, 1)

	payload, ok := reqs[0].Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "u1", payload["userId"])
	assert.Equal(t, item, payload["product"])
}

func TestAddDuplicateIsIdempotent(t *testing.T) {
	s, mock := newStore(t)

	mock.AddError("POST", "/wishlist/add", &models.APIError{
		Code: "DUPLICATE", Message: "already in wishlist", StatusCode: 409,
	})

	assert.NoError(t, s.Add(context.Background(), "u1", testutil.Item("p1")))
}

func TestRemoveMissingIsSuccess(t *testing.T) {
	s, mock := newStore(t)

	mock.AddError("DELETE", "/wishlist/remove", &models.APIError{
		Code: "NOT_FOUND", Message: "no such item", StatusCode: 404,
	})

	assert.NoError(t, s.Remove(context.Background(), "u1", "missing"))
}

func TestRemoveFailure(t *testing.T) {
	s, mock := newStore(t)

	mock.AddError("DELETE", "/wishlist/remove", &models.NetworkError{
		Op: "DELETE /wishlist/remove", Err: errors.New("connection refused"),
	})

	err := s.Remove(context.Background(), "u1", "p1")
	require.Error(t, err)

	var netErr *models.NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestClear(t *testing.T) {
	s, mock := newStore(t)

	mock.AddResponse("DELETE", "/wishlist/clear", map[string]interface{}{"success": true})

	require.NoError(t, s.Clear(context.Background(), "u1"))

	reqs := mock.RequestsFor("DELETE", "/wishlist/clear")
	require.Len(t, reqs, 1)
	payload, ok := reqs[0].Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "u1", payload["userId"])
}

func TestCartPaths(t *testing.T) {
	mock := transport.NewMockTransport()
	s := remote.NewStore(mock, models.KindCart, testutil.NewTestLogger())

	mock.AddResponse("GET", "/cart/u1", map[string]interface{}{})

	_, err := s.Fetch(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, mock.RequestsFor("GET", "/cart/u1"), 1)
}
