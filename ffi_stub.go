//go:build !kimberlite_ffi

package kimberlite

import "context"

// ffiAvailable reports whether the FFI library is linked. Without the
// kimberlite_ffi build tag it never is.
func ffiAvailable() bool {
	return false
}

type ffiBackend struct{}

func (ffiBackend) connect(string, uint64, string) error { return ErrFFIUnavailable }

func (ffiBackend) disconnect() error { return ErrFFIUnavailable }

func (ffiBackend) query(context.Context, string) (*QueryResult, error) { return nil, ErrFFIUnavailable }

func (ffiBackend) createStream(string, DataClass) (*StreamInfo, error) {
	return nil, ErrFFIUnavailable
}

func (ffiBackend) appendEvents(uint64, [][]byte) (Offset, error) { return 0, ErrFFIUnavailable }

func (ffiBackend) readEvents(uint64, uint64, uint64) ([]Event, error) {
	return nil, ErrFFIUnavailable
}
