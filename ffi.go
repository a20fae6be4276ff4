//go:build kimberlite_ffi

package kimberlite

// CGo bindings to libkimberlite_ffi.
//
// The FFI library is built from the kimberlite-ffi crate and must be
// available at link time. Set CGO_LDFLAGS to point to the library:
//
//	CGO_LDFLAGS="-L/path/to/target/release -lkimberlite_ffi" go build -tags kimberlite_ffi

/*
#cgo LDFLAGS: -lkimberlite_ffi
#include <stdint.h>
#include <stdlib.h>

// FFI function declarations from libkimberlite_ffi
extern int32_t kmb_connect(const char* addr, uint64_t tenant_id, const char* token);
extern int32_t kmb_disconnect(void);
extern int32_t kmb_query(const char* sql, char** result_json, uint64_t* result_len);
extern int32_t kmb_create_stream(const char* name, int32_t data_class, char** result_json, uint64_t* result_len);
extern int32_t kmb_append(uint64_t stream_id, const uint8_t* data, uint64_t data_len, uint64_t* offset_out);
extern int32_t kmb_read_events(uint64_t stream_id, uint64_t from_offset, uint64_t max_bytes, char** result_json, uint64_t* result_len);
extern void kmb_free_string(char* ptr);
*/
import "C"

import (
	"context"
	"fmt"
	"unsafe"

	"fortio.org/safecast"
)

// ffiAvailable returns true if the CGo FFI library is linked.
func ffiAvailable() bool {
	return true
}

type ffiBackend struct{}

// goBytes copies an FFI-owned buffer, refusing lengths C.GoBytes cannot take.
func goBytes(ptr *C.char, n C.uint64_t) ([]byte, error) {
	length, err := safecast.Conv[int32](uint64(n))
	if err != nil {
		return nil, fmt.Errorf("ffi result of %d bytes: %w", uint64(n), err)
	}
	return C.GoBytes(unsafe.Pointer(ptr), C.int(length)), nil
}

func (ffiBackend) connect(addr string, tenantID uint64, token string) error {
	cAddr := C.CString(addr)
	defer C.free(unsafe.Pointer(cAddr))

	cToken := C.CString(token)
	defer C.free(unsafe.Pointer(cToken))

	rc := C.kmb_connect(cAddr, C.uint64_t(tenantID), cToken)
	if rc != 0 {
		return ffiError("connect", int32(rc), StateConnectionFailure, ErrConnectionFailed)
	}
	return nil
}

func (ffiBackend) disconnect() error {
	rc := C.kmb_disconnect()
	if rc != 0 {
		return ffiError("disconnect", int32(rc), StateConnectionException, nil)
	}
	return nil
}

// query checks ctx only before the call; kmb_query cannot be interrupted.
func (ffiBackend) query(ctx context.Context, sql string) (*QueryResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cSQL := C.CString(sql)
	defer C.free(unsafe.Pointer(cSQL))

	var resultJSON *C.char
	var resultLen C.uint64_t

	rc := C.kmb_query(cSQL, &resultJSON, &resultLen)
	if rc != 0 {
		return nil, ffiError("query", int32(rc), StateInternal, ErrQueryFailed)
	}
	defer C.kmb_free_string(resultJSON)

	data, err := goBytes(resultJSON, resultLen)
	if err != nil {
		return nil, err
	}
	return decodeQueryResult(data)
}

func (ffiBackend) createStream(name string, class DataClass) (*StreamInfo, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var resultJSON *C.char
	var resultLen C.uint64_t

	rc := C.kmb_create_stream(cName, C.int32_t(class), &resultJSON, &resultLen)
	if rc != 0 {
		return nil, ffiError("create_stream", int32(rc), StateInternal, nil)
	}
	defer C.kmb_free_string(resultJSON)

	data, err := goBytes(resultJSON, resultLen)
	if err != nil {
		return nil, err
	}
	return decodeStreamInfo(data)
}

func (ffiBackend) appendEvents(streamID uint64, events [][]byte) (Offset, error) {
	// Concatenate all events for the FFI call
	var total int
	for _, e := range events {
		total += len(e)
	}
	buf := make([]byte, 0, total)
	for _, e := range events {
		buf = append(buf, e...)
	}

	var offsetOut C.uint64_t
	var dataPtr *C.uint8_t
	if len(buf) > 0 {
		dataPtr = (*C.uint8_t)(unsafe.Pointer(&buf[0]))
	}

	rc := C.kmb_append(C.uint64_t(streamID), dataPtr, C.uint64_t(len(buf)), &offsetOut)
	if rc != 0 {
		return 0, ffiError("append", int32(rc), StateInternal, nil)
	}

	return Offset(offsetOut), nil
}

func (ffiBackend) readEvents(streamID, fromOffset, maxBytes uint64) ([]Event, error) {
	var resultJSON *C.char
	var resultLen C.uint64_t

	rc := C.kmb_read_events(C.uint64_t(streamID), C.uint64_t(fromOffset), C.uint64_t(maxBytes), &resultJSON, &resultLen)
	if rc != 0 {
		return nil, ffiError("read_events", int32(rc), StateUndefinedObject, ErrStreamNotFound)
	}
	defer C.kmb_free_string(resultJSON)

	data, err := goBytes(resultJSON, resultLen)
	if err != nil {
		return nil, err
	}
	return decodeEvents(data)
}
