package diag

import (
	"iter"
	"sync/atomic"
)

// Append links rec at the current tail of the chain r belongs to.
//
// Append never blocks: it walks to the tail and claims the empty next slot
// with a compare-and-set, and when another producer claims it first it moves
// on to the record that won and tries again. A nil rec, a record already in
// the chain, or a record whose own successors lead back into the chain is
// ignored.
//
// The chain stays acyclic and holds every record once as long as rec is not
// being appended to while it is spliced. Fresh records are always safe, and
// so is a finished chain nobody else appends to. Splicing two chains into
// each other from different goroutines (a.Append(b) racing b.Append(a)) is
// not supported: both compare-and-sets can win and close a cycle.
func (r *Record) Append(rec *Record) {
	if rec == nil || rec == r {
		return
	}
	cur := r
	for {
		next := cur.next.Load()
		if next == nil {
			if rec.next.Load() != nil && rec.reaches(cur) {
				return
			}
			if cur.next.CompareAndSwap(nil, rec) {
				return
			}
			// Lost the race; the reload picks up the winner.
			continue
		}
		if next == rec {
			return
		}
		cur = next
	}
}

// Append links rec at the tail of the chain rooted at head. It is a no-op
// when head is nil.
func Append(head, rec *Record) {
	if head == nil {
		return
	}
	head.Append(rec)
}

// reaches reports whether target is r or one of its successors.
func (r *Record) reaches(target *Record) bool {
	for cur := r; cur != nil; cur = cur.next.Load() {
		if cur == target {
			return true
		}
	}
	return false
}

// Tail returns the last record currently linked after r.
func (r *Record) Tail() *Record {
	cur := r
	for cur != nil {
		next := cur.next.Load()
		if next == nil {
			return cur
		}
		cur = next
	}
	return nil
}

// Len returns the number of records on the chain starting at r, causes excluded.
func (r *Record) Len() int {
	n := 0
	for cur := r; cur != nil; cur = cur.next.Load() {
		n++
	}
	return n
}

// Records yields r and every record linked after it, without their causes.
func (r *Record) Records() iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for cur := r; cur != nil; cur = cur.next.Load() {
			if !yield(cur) {
				return
			}
		}
	}
}

// Warnings yields the records of the chain with SevWarning.
func (r *Record) Warnings() iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for rec := range r.Records() {
			if rec.severity == SevWarning && !yield(rec) {
				return
			}
		}
	}
}

// HasErrors reports whether any record of the chain has SevError.
func (r *Record) HasErrors() bool {
	for rec := range r.Records() {
		if rec.severity == SevError {
			return true
		}
	}
	return false
}

// Chain holds the head of a chain that starts out empty. The zero value is
// ready to use and safe for concurrent use.
type Chain struct {
	head atomic.Pointer[Record]
}

// Add makes rec the head of an empty chain or appends it to the current one.
func (c *Chain) Add(rec *Record) {
	if rec == nil {
		return
	}
	for {
		head := c.head.Load()
		if head == nil {
			if c.head.CompareAndSwap(nil, rec) {
				return
			}
			continue
		}
		head.Append(rec)
		return
	}
}

// Head returns the first record, or nil if nothing was added.
func (c *Chain) Head() *Record {
	return c.head.Load()
}

// Reset detaches the chain and returns its head. A record added while Reset
// runs may end up in either the detached chain or the new one.
func (c *Chain) Reset() *Record {
	return c.head.Swap(nil)
}
