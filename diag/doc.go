// Package diag models the diagnostics produced by a single database operation
// as a chain of records.
//
// # Data model
//
// Record is the central type. It carries:
//
//   - Severity – SevError for failures, SevWarning for advisory diagnostics.
//   - Reason – human oriented text.
//   - StatusCode – machine-readable classification (e.g. a SQLSTATE).
//   - VendorCode – numeric code specific to the database vendor.
//   - Cause – the underlying error of this record only.
//   - Next – the following record of the same operation.
//
// Records are immutable apart from two write-once slots: the cause, which may
// be initialized once with SetCause if it was not given to New, and the next
// link, which is only set by Append.
//
// # Chains
//
// Records of one operation form a singly linked chain. Append links a record
// at the current tail and is safe to call from any number of goroutines: each
// next slot is claimed with a compare-and-set, so no record is lost or linked
// twice. Appends that race end up in the order they won their slot; callers
// that need a particular order must serialize their own appends.
//
// A record that already has successors can be appended too, splicing its
// whole chain. That is only safe while no other goroutine appends to the
// spliced chain: two chains spliced into each other concurrently can form a
// cycle. Appending freshly constructed records never can.
//
// # Iteration
//
// Iterate (or the range-over-func helpers All and Entries) flattens a chain
// and the cause chains of its records into one sequence:
//
//	R0, causes of R0, R1, causes of R1, ...
//
// A cause chain follows errors.Unwrap from Record.Cause. Iteration is lazy and
// reads the chain as it goes, so records appended concurrently near the tail
// may or may not be observed. Cause chains are cut off after MaxCauseDepth
// entries or when they loop back to a value already emitted for the record.
//
// Iterating:
//
//	for err := range head.All() {
//	    log.Println(err)
//	}
package diag
