package diag

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
)

// causeBox lets the cause slot be claimed with a single compare-and-set.
type causeBox struct {
	err error
}

// Record is one reported failure or warning.
//
// Every field except the cause and the link to the next record is fixed at
// construction. Both of those are write-once: the cause may be initialized a
// single time after construction if none was given, and the next link is
// only ever set by Append.
type Record struct {
	reason     string
	statusCode string
	vendorCode int
	severity   Severity

	cause atomic.Pointer[causeBox]
	next  atomic.Pointer[Record]
}

// New creates an unlinked record. A nil cause leaves the cause unset.
func New(sev Severity, reason, statusCode string, vendorCode int, cause error) *Record {
	r := &Record{
		reason:     reason,
		statusCode: statusCode,
		vendorCode: vendorCode,
		severity:   sev,
	}
	if cause != nil {
		r.cause.Store(&causeBox{err: cause})
	}
	return r
}

// NewError creates an unlinked record with SevError.
func NewError(reason, statusCode string, vendorCode int, cause error) *Record {
	return New(SevError, reason, statusCode, vendorCode, cause)
}

// NewWarning creates an unlinked record with SevWarning.
func NewWarning(reason, statusCode string, vendorCode int, cause error) *Record {
	return New(SevWarning, reason, statusCode, vendorCode, cause)
}

// Reason returns the human-readable description, or "" if none was given.
func (r *Record) Reason() string { return r.reason }

// StatusCode returns the machine-readable status code, or "" if none was given.
func (r *Record) StatusCode() string { return r.statusCode }

// VendorCode returns the vendor-specific code, 0 by default.
func (r *Record) VendorCode() int { return r.vendorCode }

// Severity returns the severity the record was created with.
func (r *Record) Severity() Severity { return r.severity }

// Cause returns the underlying cause of this record, or nil.
func (r *Record) Cause() error {
	if b := r.cause.Load(); b != nil {
		return b.err
	}
	return nil
}

// Next returns the next record in the chain, or nil at the tail.
func (r *Record) Next() *Record {
	return r.next.Load()
}

// SetCause initializes the cause of a record created without one.
//
// The cause must be set before the record is published through Append.
// Setting a nil cause is a no-op.
func (r *Record) SetCause(cause error) error {
	if cause == nil {
		return nil
	}
	if c, ok := cause.(*Record); ok && c == r {
		return ErrSelfCause
	}
	if !r.cause.CompareAndSwap(nil, &causeBox{err: cause}) {
		return ErrDuplicateCause
	}
	return nil
}

// Error implements the error interface. Only this record is rendered; use
// %+v to render the whole chain.
func (r *Record) Error() string {
	var b strings.Builder
	if r.reason != "" {
		b.WriteString(r.reason)
	} else {
		b.WriteString(strings.ToLower(r.severity.String()))
	}
	switch {
	case r.statusCode != "" && r.vendorCode != 0:
		fmt.Fprintf(&b, " (status %s, vendor code %d)", r.statusCode, r.vendorCode)
	case r.statusCode != "":
		fmt.Fprintf(&b, " (status %s)", r.statusCode)
	case r.vendorCode != 0:
		fmt.Fprintf(&b, " (vendor code %d)", r.vendorCode)
	}
	return b.String()
}

// Unwrap returns the cause so errors.Is and errors.As walk the cause chain.
func (r *Record) Unwrap() error {
	return r.Cause()
}

// Format implements fmt.Formatter. %+v writes every diagnostic reachable
// from r, one per line, with causes indented under their record. Other verbs
// are reported the way fmt reports a bad verb, message included.
func (r *Record) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			first := true
			for e := range r.Entries() {
				if !first {
					io.WriteString(s, "\n")
				}
				first = false
				if e.Depth == 0 {
					fmt.Fprintf(s, "%s: %s", e.Owner.severity, e.Owner.Error())
					continue
				}
				fmt.Fprintf(s, "%scaused by: %s", strings.Repeat("  ", e.Depth), e.Err.Error())
			}
			return
		}
		io.WriteString(s, r.Error())
	case 's':
		io.WriteString(s, r.Error())
	case 'q':
		fmt.Fprintf(s, "%q", r.Error())
	default:
		fmt.Fprintf(s, "%%!%c(*diag.Record=%s)", verb, r.Error())
	}
}

// LogValue implements slog.LogValuer.
func (r *Record) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 5)
	attrs = append(attrs, slog.String("severity", r.severity.String()))
	if r.reason != "" {
		attrs = append(attrs, slog.String("reason", r.reason))
	}
	if r.statusCode != "" {
		attrs = append(attrs, slog.String("status", r.statusCode))
	}
	if r.vendorCode != 0 {
		attrs = append(attrs, slog.Int("vendor_code", r.vendorCode))
	}
	if c := r.Cause(); c != nil {
		attrs = append(attrs, slog.String("cause", c.Error()))
	}
	return slog.GroupValue(attrs...)
}
