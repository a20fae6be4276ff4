package diag

import "errors"

// Contract errors returned by the package. They signal misuse by the caller
// and are never retried internally.
var (
	// ErrDuplicateCause is returned by SetCause when the record already has a cause.
	ErrDuplicateCause = errors.New("diag: cause already set")

	// ErrSelfCause is returned by SetCause when a record is given itself as cause.
	ErrSelfCause = errors.New("diag: record cannot be its own cause")

	// ErrExhausted is returned by Iterator.Next when nothing remains.
	ErrExhausted = errors.New("diag: iterator exhausted")
)
