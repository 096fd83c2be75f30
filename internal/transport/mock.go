package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MockTransport provides a mock implementation for testing.
type MockTransport struct {
	mu sync.Mutex

	// Response configuration, keyed by "METHOD path".
	Responses map[string]interface{}

	// Error injection, keyed by "METHOD path". Errors trumps Responses.
	Errors map[string]error

	// Request tracking
	Requests []Request

	token  string
	closed bool
}

// Request tracks one issued request.
type Request struct {
	Method  string
	Path    string
	Payload interface{}
}

// NewMockTransport creates a mock transport.
func NewMockTransport() *MockTransport {
	return &MockTransport{
		Responses: make(map[string]interface{}),
		Errors:    make(map[string]error),
		Requests:  []Request{},
	}
}

// AddResponse configures the response for a method and path.
func (m *MockTransport) AddResponse(method, path string, resp interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[method+" "+path] = resp
}

// AddError configures an error for a method and path.
func (m *MockTransport) AddError(method, path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[method+" "+path] = err
}

// RequestsFor returns the tracked requests matching a method and path.
func (m *MockTransport) RequestsFor(method, path string) []Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Request
	for _, r := range m.Requests {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// GetJSON mocks HTTP GET.
func (m *MockTransport) GetJSON(ctx context.Context, path string) (map[string]interface{}, error) {
	return m.handle("GET", path, nil)
}

// PostJSON mocks HTTP POST.
func (m *MockTransport) PostJSON(ctx context.Context, path string, payload interface{}) (map[string]interface{}, error) {
	return m.handle("POST", path, payload)
}

// DeleteJSON mocks HTTP DELETE.
func (m *MockTransport) DeleteJSON(ctx context.Context, path string, payload interface{}) (map[string]interface{}, error) {
	return m.handle("DELETE", path, payload)
}

func (m *MockTransport) handle(method, path string, payload interface{}) (map[string]interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, Request{
		Method:  method,
		Path:    path,
		Payload: payload,
	})

	key := method + " " + path

	if err, ok := m.Errors[key]; ok {
		return nil, err
	}

	if resp, ok := m.Responses[key]; ok {
		if mapResp, ok := resp.(map[string]interface{}); ok {
			return mapResp, nil
		}

		// Convert to map if needed
		data, _ := json.Marshal(resp)
		var result map[string]interface{}
		_ = json.Unmarshal(data, &result)
		return result, nil
	}

	return nil, fmt.Errorf("no mock response for %s", key)
}

// SetToken stores the token.
func (m *MockTransport) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

// GetToken returns the stored token.
func (m *MockTransport) GetToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Close marks the transport closed.
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockTransport) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
