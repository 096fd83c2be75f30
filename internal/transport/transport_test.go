package transport_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bharatshaala/wishsync/internal/config"
	"github.com/bharatshaala/wishsync/internal/models"
	"github.com/bharatshaala/wishsync/internal/transport"
	"github.com/bharatshaala/wishsync/test/testutil"
)

func newClient(t *testing.T, handler http.Handler) *transport.HTTPClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return transport.NewHTTPClient(&config.APIConfig{
		BaseURL:   server.URL,
		Timeout:   5 * time.Second,
		UserAgent: "wishsync-test",
	}, testutil.NewTestLogger())
}

func TestGetJSON(t *testing.T) {
	var gotAuth, gotAgent string
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"items": []string{}})
	}))
	client.SetToken("tok-1")

	resp, err := client.GetJSON(context.Background(), "/wishlist/u1")
	require.NoError(t, err)
	assert.Contains(t, resp, "items")
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "wishsync-test", gotAgent)
}

func TestPostJSONSendsPayload(t *testing.T) {
	var body map[string]interface{}
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, http.MethodPost, r.Method)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))

	_, err := client.PostJSON(context.Background(), "/wishlist/add", map[string]interface{}{
		"userId": "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", body["userId"])
}

func TestNon2xxBecomesAPIError(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"code":    "DUPLICATE",
			"message": "already in wishlist",
		})
	}))

	_, err := client.PostJSON(context.Background(), "/wishlist/add", nil)
	require.Error(t, err)

	var apiErr *models.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "DUPLICATE", apiErr.Code)
}

func TestNonJSONErrorBody(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))

	_, err := client.GetJSON(context.Background(), "/wishlist/u1")
	require.Error(t, err)

	var apiErr *models.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.True(t, apiErr.IsServerError())
}

func TestSingleAttemptPerCall(t *testing.T) {
	attempts := 0
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := client.GetJSON(context.Background(), "/wishlist/u1")
	require.Error(t, err)
	assert.Equal(t, 1, attempts, "the adapter never retries on its own")
}

func TestConnectionFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := transport.NewHTTPClient(&config.APIConfig{
		BaseURL: url,
		Timeout: time.Second,
	}, testutil.NewTestLogger())

	_, err := client.GetJSON(context.Background(), "/wishlist/u1")
	require.Error(t, err)

	var netErr *models.NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestEmptyResponseBody(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	resp, err := client.DeleteJSON(context.Background(), "/wishlist/clear", map[string]interface{}{"userId": "u1"})
	require.NoError(t, err)
	assert.Empty(t, resp)
}
