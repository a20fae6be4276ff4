package kimberlite

import (
	"errors"

	"github.com/kimberlitedb/kimberlite-go/diag"
)

// Sentinel errors returned by the Kimberlite client.
var (
	// ErrNotConnected is returned when calling methods on a closed or uninitialized client.
	ErrNotConnected = errors.New("kimberlite: not connected")

	// ErrConnectionFailed is returned when the client cannot establish a connection.
	ErrConnectionFailed = errors.New("kimberlite: connection failed")

	// ErrQueryFailed is returned when a SQL query fails to execute.
	ErrQueryFailed = errors.New("kimberlite: query failed")

	// ErrStreamNotFound is returned when a stream does not exist.
	ErrStreamNotFound = errors.New("kimberlite: stream not found")

	// ErrTenantRequired is returned when a tenant ID is required but not provided.
	ErrTenantRequired = errors.New("kimberlite: tenant ID required")

	// ErrPermissionDenied is returned when the operation is not authorized.
	ErrPermissionDenied = errors.New("kimberlite: permission denied")

	// ErrTimeout is returned when an operation exceeds its deadline.
	ErrTimeout = errors.New("kimberlite: operation timed out")

	// ErrFFIUnavailable is returned when the native FFI library is not loaded.
	ErrFFIUnavailable = errors.New("kimberlite: FFI library not available (build with -tags kimberlite_ffi)")
)

// KimberliteError is a diagnostic reported by the server or the client.
// Further diagnostics of the same operation are linked through Next, and
// Cause holds the underlying error of this one.
type KimberliteError = diag.Record

// NewError creates an error diagnostic. code is the status code and may be
// empty; cause may be nil.
func NewError(code, message string, vendorCode int, cause error) *KimberliteError {
	return diag.NewError("kimberlite: "+message, code, vendorCode, cause)
}

// NewWarning creates a warning diagnostic.
func NewWarning(code, message string, vendorCode int, cause error) *KimberliteError {
	return diag.NewWarning("kimberlite: "+message, code, vendorCode, cause)
}
