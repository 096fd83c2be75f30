package models

import (
	"errors"
	"fmt"
)

// Error codes for structured error handling.
const (
	ErrCodeAuth        = "AUTH_ERROR"
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeNetwork     = "NETWORK_ERROR"
	ErrCodeServerError = "SERVER_ERROR"
	ErrCodeStorage     = "STORAGE_ERROR"
	ErrCodeConfig      = "CONFIG_ERROR"
)

// Sentinel errors
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidItem      = errors.New("invalid collection item")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrMergeInProgress  = errors.New("merge already in progress")
)

// APIError represents an error response from the storefront API.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
	RequestID  string `json:"request_id,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// IsServerError reports whether the failure came from the server side
// rather than the request itself.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// NetworkError wraps a transport-level failure (connection refused, DNS,
// timeout) as distinct from a server rejection.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// SyncError provides detailed merge failure information.
type SyncError struct {
	Code   string
	Kind   CollectionKind
	ItemID string
	Err    error
}

func (e *SyncError) Error() string {
	if e.ItemID != "" {
		return fmt.Sprintf("sync %s [%s]: item %s: %v", e.Kind, e.Code, e.ItemID, e.Err)
	}
	return fmt.Sprintf("sync %s [%s]: %v", e.Kind, e.Code, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
