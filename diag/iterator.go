package diag

import (
	"errors"
	"iter"
	"reflect"
)

// MaxCauseDepth is the most causes the iterator emits for a single record.
// Longer cause chains are truncated.
const MaxCauseDepth = 64

// Entry is one value produced by an Iterator.
type Entry struct {
	// Err is the emitted diagnostic: a record of the chain or one of its causes.
	Err error
	// Owner is the chain record Err belongs to. For Depth 0, Owner == Err.
	Owner *Record
	// Depth is 0 for the record itself and n for its n-th cause.
	Depth int
}

// Iterator walks a chain lazily, emitting each record followed by its cause
// chain before moving on to the next record. It is single-pass; build a new
// one to traverse again. An Iterator is not safe for concurrent use, but the
// chain it reads may be appended to concurrently.
type Iterator struct {
	head  *Record // chain record not yet emitted
	owner *Record // last emitted chain record
	next  *Record // owner's successor, cached once seen
	cause error   // next cause of owner to emit
	depth int
	seen  []error
}

// Iterate returns an iterator over everything reachable from head.
func Iterate(head *Record) *Iterator {
	return &Iterator{head: head}
}

// Iterate returns an iterator over everything reachable from r.
func (r *Record) Iterate() *Iterator {
	return Iterate(r)
}

// HasNext reports whether Next would return a value.
func (it *Iterator) HasNext() bool {
	return it.head != nil || it.cause != nil || it.successor() != nil
}

// Next returns the next diagnostic, or ErrExhausted when nothing remains.
func (it *Iterator) Next() (Entry, error) {
	if it.cause != nil {
		c := it.cause
		it.depth++
		it.seen = append(it.seen, c)
		it.cause = it.causeAfter(c)
		return Entry{Err: c, Owner: it.owner, Depth: it.depth}, nil
	}
	if it.head == nil {
		it.head = it.successor()
	}
	if it.head == nil {
		return Entry{}, ErrExhausted
	}
	r := it.head
	it.head, it.next, it.owner = nil, nil, r
	it.depth = 0
	it.seen = append(it.seen[:0], r)
	it.cause = r.Cause()
	return Entry{Err: r, Owner: r}, nil
}

func (it *Iterator) successor() *Record {
	if it.next == nil && it.owner != nil {
		it.next = it.owner.Next()
	}
	return it.next
}

// causeAfter returns the cause following c, stopping at MaxCauseDepth or
// when the chain loops back to a value already emitted for this record.
func (it *Iterator) causeAfter(c error) error {
	if it.depth >= MaxCauseDepth {
		return nil
	}
	u := errors.Unwrap(c)
	if u == nil || !reflect.TypeOf(u).Comparable() {
		return u
	}
	for _, s := range it.seen {
		if s == u {
			return nil
		}
	}
	return u
}

// All yields every diagnostic reachable from r in iteration order.
func (r *Record) All() iter.Seq[error] {
	return func(yield func(error) bool) {
		for e := range r.Entries() {
			if !yield(e.Err) {
				return
			}
		}
	}
}

// Entries is like All but yields the owning record and cause depth too.
func (r *Record) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		it := Iterate(r)
		for {
			e, err := it.Next()
			if err != nil || !yield(e) {
				return
			}
		}
	}
}
