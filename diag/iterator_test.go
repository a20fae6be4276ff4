package diag

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func drain(t *testing.T, it *Iterator) []error {
	t.Helper()
	var out []error
	for it.HasNext() {
		e, err := it.Next()
		require.NoError(t, err)
		out = append(out, e.Err)
	}
	return out
}

// loopErr lets tests build cause graphs that cycle back on themselves.
type loopErr struct {
	msg  string
	next error
}

func (e *loopErr) Error() string { return e.msg }
func (e *loopErr) Unwrap() error { return e.next }

func TestIterateOrder(t *testing.T) {
	c0 := errors.New("c0")
	c2b := errors.New("c2b")
	c2a := NewError("c2a", "", 0, c2b)

	r0 := NewError("r0", "", 0, c0)
	r1 := NewWarning("r1", "", 0, nil)
	r2 := NewError("r2", "", 0, c2a)
	r0.Append(r1)
	r0.Append(r2)

	expected := []error{r0, c0, r1, r2, c2a, c2b}
	assert.Equal(t, expected, drain(t, Iterate(r0)))
	assert.Equal(t, expected, slices.Collect(r0.All()))

	entries := slices.Collect(r0.Entries())
	require.Len(t, entries, 6)
	assert.Equal(t, Entry{Err: r0, Owner: r0, Depth: 0}, entries[0])
	assert.Equal(t, Entry{Err: c0, Owner: r0, Depth: 1}, entries[1])
	assert.Equal(t, Entry{Err: r1, Owner: r1, Depth: 0}, entries[2])
	assert.Equal(t, Entry{Err: c2a, Owner: r2, Depth: 1}, entries[4])
	assert.Equal(t, Entry{Err: c2b, Owner: r2, Depth: 2}, entries[5])
}

func TestIterateFromMiddle(t *testing.T) {
	r0 := NewError("r0", "", 0, nil)
	r1 := NewError("r1", "", 0, errors.New("c1"))
	r2 := NewError("r2", "", 0, nil)
	r0.Append(r1)
	r0.Append(r2)

	got := slices.Collect(r1.All())
	require.Len(t, got, 3)
	assert.Same(t, r1, got[0])
	assert.EqualError(t, got[1], "c1")
	assert.Same(t, r2, got[2])
}

func TestIterateSingleRecord(t *testing.T) {
	r := NewError("only", "", 0, nil)
	it := r.Iterate()

	require.True(t, it.HasNext())
	e, err := it.Next()
	require.NoError(t, err)
	assert.Same(t, r, e.Err)

	assert.False(t, it.HasNext())
	_, err = it.Next()
	assert.ErrorIs(t, err, ErrExhausted)
	_, err = it.Next()
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestIterateNil(t *testing.T) {
	it := Iterate(nil)

	assert.False(t, it.HasNext())
	_, err := it.Next()
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Empty(t, slices.Collect((*Record)(nil).All()))
}

func TestIterateIdempotent(t *testing.T) {
	r0 := NewError("r0", "", 0, fmt.Errorf("wrapped: %w", errors.New("root")))
	r0.Append(NewWarning("r1", "", 0, nil))
	r0.Append(NewError("r2", "", 0, errors.New("c2")))

	first := drain(t, Iterate(r0))
	second := drain(t, Iterate(r0))

	assert.Len(t, first, 6)
	assert.Equal(t, first, second)
}

func TestIterateSeesLaterAppends(t *testing.T) {
	r0 := NewError("r0", "", 0, nil)
	it := Iterate(r0)

	e, err := it.Next()
	require.NoError(t, err)
	assert.Same(t, r0, e.Err)
	assert.False(t, it.HasNext())

	r1 := NewError("r1", "", 0, nil)
	r0.Append(r1)

	require.True(t, it.HasNext())
	e, err = it.Next()
	require.NoError(t, err)
	assert.Same(t, r1, e.Err)
}

func TestIterateCauseDepthLimit(t *testing.T) {
	cause := errors.New("root")
	for i := range MaxCauseDepth + 20 {
		cause = fmt.Errorf("layer %d: %w", i, cause)
	}
	r0 := NewError("r0", "", 0, cause)
	r1 := NewError("r1", "", 0, nil)
	r0.Append(r1)

	got := slices.Collect(r0.All())
	require.Len(t, got, 1+MaxCauseDepth+1)
	assert.Same(t, r1, got[len(got)-1])
}

func TestIterateCauseLoop(t *testing.T) {
	t.Run("loop between causes", func(t *testing.T) {
		a := &loopErr{msg: "a"}
		b := &loopErr{msg: "b", next: a}
		a.next = b
		r := NewError("r", "", 0, a)

		assert.Equal(t, []error{r, a, b}, slices.Collect(r.All()))
	})

	t.Run("cause wrapping its own record", func(t *testing.T) {
		r := NewError("r", "", 0, nil)
		wrapped := fmt.Errorf("context: %w", r)
		require.NoError(t, r.SetCause(wrapped))

		assert.Equal(t, []error{r, wrapped}, slices.Collect(r.All()))
	})
}

func TestIterateWhileAppending(t *testing.T) {
	const producers = 200

	head := NewError("head", "", 0, errors.New("cause"))
	var g errgroup.Group
	for i := range producers {
		g.Go(func() error {
			head.Append(NewWarning(fmt.Sprintf("w%d", i), "", 0, nil))
			return nil
		})
	}
	for range 4 {
		g.Go(func() error {
			seen := make(map[error]bool)
			for e := range head.Entries() {
				if e.Depth > 0 {
					continue
				}
				if seen[e.Err] {
					return fmt.Errorf("record %v seen twice", e.Err)
				}
				seen[e.Err] = true
			}
			if len(seen) > producers+1 {
				return fmt.Errorf("saw %d records", len(seen))
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Len(t, slices.Collect(head.All()), producers+2)
}
