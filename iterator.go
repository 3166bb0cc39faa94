package ringdeque

import "iter"

// Iterator positions, besides the logical index of the current element.
const (
	notStarted = -1
	ended      = -2
)

// Iterator walks a Deque from front to back and fails fast with ErrStale once
// the Deque is structurally modified. Use it as:
//
//	it := d.Iterator()
//	defer it.Close()
//	for {
//		ok, err := it.Next()
//		if err != nil || !ok {
//			break
//		}
//		v, _ := it.Value()
//		...
//	}
//
// An Iterator only reads its Deque.
type Iterator[T any] struct {
	d     *Deque[T]
	rev   uint64
	index int
	cur   T
}

// Iterator returns an Iterator positioned before the first element. A nil
// Deque yields an Iterator over no elements.
func (d *Deque[T]) Iterator() *Iterator[T] {
	if d == nil {
		d = new(Deque[T])
	}
	return &Iterator[T]{d: d, rev: d.rev, index: notStarted}
}

// Next advances to the next element and reports whether there is one. It
// returns ErrStale if the Deque changed since the Iterator was created or
// reset. Once Next has returned false, every later call returns false.
func (it *Iterator[T]) Next() (bool, error) {
	if it.rev != it.d.rev {
		return false, ErrStale
	}
	if it.index == ended {
		return false, nil
	}
	it.index++
	if it.index == it.d.size {
		it.end()
		return false, nil
	}
	it.cur = it.d.at(it.index)
	return true, nil
}

// Value returns the element produced by the last call to Next. It returns
// ErrStale if the Deque changed, ErrNotStarted before the first Next and
// ErrEnded after iteration is over.
func (it *Iterator[T]) Value() (t T, err error) {
	if it.rev != it.d.rev {
		return t, ErrStale
	}
	switch it.index {
	case notStarted:
		return t, ErrNotStarted
	case ended:
		return t, ErrEnded
	}
	return it.cur, nil
}

// Reset moves the Iterator back before the first element. It returns
// ErrStale if the Deque changed; a stale Iterator cannot be revived.
func (it *Iterator[T]) Reset() error {
	if it.rev != it.d.rev {
		return ErrStale
	}
	var zero T
	it.index, it.cur = notStarted, zero
	return nil
}

// Close ends the iteration and drops the current element. It is safe to call
// more than once.
func (it *Iterator[T]) Close() { it.end() }

func (it *Iterator[T]) end() {
	var zero T
	it.index, it.cur = ended, zero
}

/*****************************************************************************
 * ITER API
 *****************************************************************************/

// Values returns an iterator over the elements, front to back. It panics with
// ErrStale if the Deque is structurally modified during iteration.
func (d *Deque[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, t := range d.All() {
			if !yield(t) {
				return
			}
		}
	}
}

// All returns an iterator over index-value pairs, front to back. It has the
// same semantics as slices.All, except that it panics with ErrStale if the
// Deque is structurally modified during iteration.
func (d *Deque[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if d == nil {
			return
		}
		it := d.Iterator()
		defer it.Close()
		for i := 0; ; i++ {
			ok, err := it.Next()
			if err != nil {
				panic(err)
			}
			if !ok {
				return
			}
			if !yield(i, it.cur) {
				return
			}
		}
	}
}
