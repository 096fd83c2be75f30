package transport

import (
	"context"
)

// Transport abstracts HTTP communication with the storefront API.
type Transport interface {
	// GetJSON issues a GET request and decodes the JSON response.
	GetJSON(ctx context.Context, path string) (map[string]interface{}, error)

	// PostJSON issues a POST request with a JSON payload.
	PostJSON(ctx context.Context, path string, payload interface{}) (map[string]interface{}, error)

	// DeleteJSON issues a DELETE request with a JSON payload.
	DeleteJSON(ctx context.Context, path string, payload interface{}) (map[string]interface{}, error)

	// Authentication
	SetToken(token string)
	GetToken() string

	// Lifecycle
	Close() error
}

var (
	_ Transport = (*HTTPClient)(nil)
	_ Transport = (*MockTransport)(nil)
)
