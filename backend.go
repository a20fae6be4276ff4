package kimberlite

import (
	"context"
	"encoding/json"
	"fmt"

	"fortio.org/safecast"
)

// backend is the transport a Client drives. The FFI bridge is the only
// production implementation; tests substitute their own. query returns
// ctx.Err() when ctx is done before or, if the transport allows, during the
// call.
type backend interface {
	connect(addr string, tenantID uint64, token string) error
	disconnect() error
	query(ctx context.Context, sql string) (*QueryResult, error)
	createStream(name string, class DataClass) (*StreamInfo, error)
	appendEvents(streamID uint64, events [][]byte) (Offset, error)
	readEvents(streamID, fromOffset, maxBytes uint64) ([]Event, error)
}

// ffiError reports a non-zero FFI return code. The code becomes the vendor
// code and sentinel the cause, so errors.Is keeps working.
func ffiError(op string, rc int32, state string, sentinel error) *KimberliteError {
	return NewError(state, "ffi "+op+" failed", int(rc), sentinel)
}

func decodeQueryResult(data []byte) (*QueryResult, error) {
	var result QueryResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode query result: %w", err)
	}
	return &result, nil
}

func decodeStreamInfo(data []byte) (*StreamInfo, error) {
	var info StreamInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to decode stream info: %w", err)
	}
	return &info, nil
}

func decodeEvents(data []byte) ([]Event, error) {
	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}

// warningRecord converts a server warning into a diagnostic. Vendor codes
// that do not fit an int are dropped.
func warningRecord(w ServerWarning) *KimberliteError {
	vendorCode, err := safecast.Conv[int](w.VendorCode)
	if err != nil {
		vendorCode = 0
	}
	state := w.Code
	if state == "" {
		state = StateWarning
	}
	return NewWarning(state, w.Message, vendorCode, nil)
}
