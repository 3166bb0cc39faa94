package ringdeque

import (
	"fmt"
	"iter"
	"slices"
)

// Deque is a double-ended queue stored in a circular buffer. Elements can be
// pushed and popped at both ends in amortized O(1), and read by position in
// O(1).
//
// The zero value is an empty Deque with no capacity, ready to use:
//
//	var d ringdeque.Deque[int]
//	d.PushBack(1, 2, 3)
//
// When a push finds the buffer full, the Deque reallocates to roughly twice
// its capacity. It never shrinks on its own; call TrimToSize to release
// unused capacity.
//
// Every structural change (push, pop, clear, reallocation) bumps an internal
// revision. Iterators capture that revision and fail with ErrStale once it
// drifts.
//
// A Deque is not safe for concurrent use. Callers sharing one across
// goroutines must provide their own locking.
type Deque[T any] struct {
	buf []T
	// head is the physical index of the front element, tail the physical
	// index where the next PushBack lands. head == tail for both an empty and
	// a full buffer; size tells them apart.
	head, tail, size int
	rev              uint64
}

const (
	// defaultCapacity is the starting capacity for FromSeq.
	defaultCapacity = 4
	// minGrow is the smallest amount a full buffer grows by, so that growth
	// from a capacity of 0 or 1 makes progress.
	minGrow = 4
	// growFactor is the growth rate as a percentage of the current capacity.
	growFactor = 200
)

/*****************************************************************************
 * CONSTRUCTORS
 *****************************************************************************/

// New returns an empty Deque with no allocated capacity.
func New[T any]() *Deque[T] {
	return &Deque[T]{}
}

// NewWithCapacity returns an empty Deque that can hold capacity elements
// before reallocating. It returns ErrNegativeCapacity if capacity < 0.
func NewWithCapacity[T any](capacity int) (*Deque[T], error) {
	if capacity < 0 {
		return nil, ErrNegativeCapacity
	}
	return &Deque[T]{buf: make([]T, capacity)}, nil
}

// Order selects the end FromSeq pushes each input element to.
type Order int

const (
	// AtBack pushes each element at the back, preserving input order.
	AtBack Order = iota
	// AtFront pushes each element at the front, reversing input order.
	AtFront
)

// FromSeq builds a Deque by pushing every element of seq, in turn, at the end
// selected by order. It returns an error wrapping ErrInvalidArgument if seq is
// nil or order is unknown.
func FromSeq[T any](seq iter.Seq[T], order Order) (*Deque[T], error) {
	if seq == nil {
		return nil, errNilSeq
	}
	d := &Deque[T]{buf: make([]T, defaultCapacity)}
	var push func(...T)
	switch order {
	case AtBack:
		push = d.PushBack
	case AtFront:
		push = d.PushFront
	default:
		return nil, errUnknownOrder
	}
	for t := range seq {
		push(t)
	}
	return d, nil
}

// FromSlice copies every element of s into a new Deque, in order. The new
// Deque's capacity is exactly len(s) and no memory is shared with s.
func FromSlice[T any](s []T) *Deque[T] {
	return &Deque[T]{buf: slices.Clone(s), size: len(s)}
}

/*****************************************************************************
 * DEQUE API
 *****************************************************************************/

// Len returns the number of elements in the Deque or 0 if nil.
func (d *Deque[T]) Len() int {
	if d == nil {
		return 0
	}
	return d.size
}

// Cap returns the number of elements the Deque can hold before reallocating.
func (d *Deque[T]) Cap() int {
	if d == nil {
		return 0
	}
	return len(d.buf)
}

// PushBack appends each argument at the back of the Deque, in order. The
// last argument becomes the new back.
func (d *Deque[T]) PushBack(ts ...T) {
	for _, t := range ts {
		if d.size == len(d.buf) {
			d.grow()
		}
		d.buf[d.tail] = t
		d.tail = d.wrap(d.tail + 1)
		d.size++
		d.rev++
	}
}

// PushFront prepends each argument at the front of the Deque, in order. The
// last argument becomes the new front.
func (d *Deque[T]) PushFront(ts ...T) {
	for _, t := range ts {
		if d.size == len(d.buf) {
			d.grow()
		}
		d.head = d.wrap(d.head - 1)
		d.buf[d.head] = t
		d.size++
		d.rev++
	}
}

// PeekBack returns the last element without removing it, or ErrEmpty.
func (d *Deque[T]) PeekBack() (t T, err error) {
	if d.Len() == 0 {
		return t, ErrEmpty
	}
	return d.buf[d.wrap(d.tail-1)], nil
}

// PeekFront returns the first element without removing it, or ErrEmpty.
func (d *Deque[T]) PeekFront() (t T, err error) {
	if d.Len() == 0 {
		return t, ErrEmpty
	}
	return d.buf[d.head], nil
}

// PopBack removes the last element and returns it, or returns ErrEmpty. The
// vacated slot is zeroed so the Deque holds no reference to the element.
func (d *Deque[T]) PopBack() (t T, err error) {
	if d.Len() == 0 {
		return t, ErrEmpty
	}
	var zero T
	i := d.wrap(d.tail - 1)
	t, d.buf[i] = d.buf[i], zero
	d.tail = i
	d.size--
	d.rev++
	return t, nil
}

// PopFront removes the first element and returns it, or returns ErrEmpty.
// The vacated slot is zeroed so the Deque holds no reference to the element.
func (d *Deque[T]) PopFront() (t T, err error) {
	if d.Len() == 0 {
		return t, ErrEmpty
	}
	var zero T
	t, d.buf[d.head] = d.buf[d.head], zero
	d.head = d.wrap(d.head + 1)
	d.size--
	d.rev++
	return t, nil
}

// Clear empties the Deque in O(d.Len()), zeroing every element and keeping
// the capacity.
func (d *Deque[T]) Clear() {
	a, b := d.slices()
	clear(a)
	clear(b)
	d.head, d.tail, d.size = 0, 0, 0
	d.rev++
}

/*****************************************************************************
 * SLICE API
 *****************************************************************************/

// At returns the i-th element counting from the front. Panics if out of
// bounds.
func (d *Deque[T]) At(i int) T {
	d.checkBounds(i)
	return d.at(i)
}

// Set overwrites the i-th element counting from the front. Panics if out of
// bounds. Set is not a structural change, so iterators stay valid.
func (d *Deque[T]) Set(i int, t T) {
	d.checkBounds(i)
	d.buf[d.wrap(d.head+i)] = t
}

// at reads the i-th logical element. Callers guarantee 0 <= i < d.size.
func (d *Deque[T]) at(i int) T {
	return d.buf[(d.head+i)%len(d.buf)]
}

// Contains returns whether t is in the Deque. This must not be a method,
// otherwise Deque would be constrained to comparable elements. It has the
// same semantics as slices.Contains.
func Contains[T comparable](d *Deque[T], t T) bool {
	a, b := d.slices()
	return slices.Contains(a, t) || slices.Contains(b, t)
}

// ContainsFunc returns whether an element satisfying f is in the Deque. It has
// the same semantics as slices.ContainsFunc.
func (d *Deque[T]) ContainsFunc(f func(T) bool) bool {
	a, b := d.slices()
	return slices.ContainsFunc(a, f) || slices.ContainsFunc(b, f)
}

// CopyTo copies every element of the Deque, front to back, into dst starting
// at dst[offset]. It returns an error wrapping ErrInvalidArgument, and copies
// nothing, if offset is outside [0, len(dst)] or if dst[offset:] cannot hold
// d.Len() elements.
func (d *Deque[T]) CopyTo(dst []T, offset int) error {
	if offset < 0 || offset > len(dst) {
		return errOffsetOutOfRange
	}
	if len(dst)-offset < d.Len() {
		return errShortDestination
	}
	a, b := d.slices()
	n := copy(dst[offset:], a)
	copy(dst[offset+n:], b)
	return nil
}

// ToSlice allocates a slice of exactly d.Len() elements and copies the Deque
// into it, front to back.
func (d *Deque[T]) ToSlice() []T {
	s := make([]T, d.Len())
	_ = d.CopyTo(s, 0)
	return s
}

// TrimToSize reallocates the buffer to exactly d.Len() elements if less than
// 90% of the capacity is in use. Otherwise it does nothing.
func (d *Deque[T]) TrimToSize() {
	if d.size < len(d.buf)*9/10 {
		d.setCapacity(d.size)
	}
}

// Reserve ensures there's room for at least n more elements, reallocating at
// most once. It returns ErrNegativeCapacity if n is negative.
func (d *Deque[T]) Reserve(n int) error {
	if n < 0 {
		return ErrNegativeCapacity
	}
	if need := d.size + n; need > len(d.buf) {
		d.setCapacity(need)
	}
	return nil
}

/*****************************************************************************
 * HELPERS
 *****************************************************************************/

// wrap maps i, which may be off by at most one capacity in either direction,
// into [0, len(d.buf)).
func (d *Deque[T]) wrap(i int) int {
	n := len(d.buf)
	switch {
	case i < 0:
		return i + n
	case i >= n:
		return i - n
	}
	return i
}

func (d *Deque[T]) grow() {
	c := len(d.buf)
	d.setCapacity(max(c+minGrow, c*growFactor/100))
}

// setCapacity moves the elements into a new buffer of length c, front first
// at index 0. Callers guarantee c >= d.size.
func (d *Deque[T]) setCapacity(c int) {
	buf := make([]T, c)
	a, b := d.slices()
	n := copy(buf, a)
	copy(buf[n:], b)
	d.buf = buf
	d.head = 0
	d.tail = d.wrap(d.size)
	d.rev++
}

// slices returns the occupied span as up to two runs of the buffer, front
// run first.
func (d *Deque[T]) slices() (a, b []T) {
	if d == nil || d.size == 0 {
		return nil, nil
	}
	if end := d.head + d.size; end <= len(d.buf) {
		return d.buf[d.head:end], nil
	}
	return d.buf[d.head:], d.buf[:d.tail]
}

func (d *Deque[T]) checkBounds(i int) {
	if i < 0 || i >= d.Len() {
		panic(fmt.Sprintf("ringdeque: index %d out of bounds with length %d", i, d.Len()))
	}
}
