package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/lucasgdosr/ringdeque"
	"github.com/sirupsen/logrus"
)

// ErrMismatch is wrapped by every failed step check.
var ErrMismatch = errors.New("unexpected result")

// Runner replays scripts. The zero value discards output and logs to the
// standard logrus logger.
type Runner struct {
	// Out receives labels, dumps and printed results.
	Out io.Writer
	// Log receives one debug entry per step.
	Log *logrus.Entry
	// DefaultCapacity is used for scripts that set neither from nor
	// initial_capacity.
	DefaultCapacity int
}

// Run applies every step of s to a fresh deque and returns the deque as left
// by the last step. It stops at the first failed step, or when ctx is done.
func (r *Runner) Run(ctx context.Context, s *Script) (*ringdeque.Deque[int], error) {
	out, log := r.Out, r.Log
	if out == nil {
		out = io.Discard
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	log = log.WithField("script", s.Name)
	d, err := r.build(s)
	if err != nil {
		return nil, fmt.Errorf("script %q: %w", s.Name, err)
	}
	for i := range s.Steps {
		if err := ctx.Err(); err != nil {
			return d, err
		}
		st := &s.Steps[i]
		if err := step(out, d, st); err != nil {
			log.WithError(err).WithFields(logrus.Fields{"step": i, "op": st.Op}).Warn("Step failed")
			return d, fmt.Errorf("script %q: step %d (%s): %w", s.Name, i, st.Op, err)
		}
		log.WithFields(logrus.Fields{
			"step": i,
			"op":   st.Op,
			"len":  d.Len(),
			"cap":  d.Cap(),
		}).Debug("Step done")
	}
	return d, nil
}

func (r *Runner) build(s *Script) (*ringdeque.Deque[int], error) {
	if len(s.From) > 0 {
		order := ringdeque.AtBack
		if s.Order == "front" {
			order = ringdeque.AtFront
		}
		return ringdeque.FromSeq(slices.Values(s.From), order)
	}
	capacity := r.DefaultCapacity
	if s.InitialCapacity != nil {
		capacity = *s.InitialCapacity
	}
	return ringdeque.NewWithCapacity[int](capacity)
}

func step(out io.Writer, d *ringdeque.Deque[int], st *Step) error {
	if st.Label != "" {
		fmt.Fprintln(out, st.Label)
	}

	var (
		got   int
		found bool
		err   error
	)
	switch st.Op {
	case OpPushBack:
		d.PushBack(st.Values...)
	case OpPushFront:
		d.PushFront(st.Values...)
	case OpPopBack:
		got, err = d.PopBack()
	case OpPopFront:
		got, err = d.PopFront()
	case OpPeekBack:
		got, err = d.PeekBack()
	case OpPeekFront:
		got, err = d.PeekFront()
	case OpClear:
		d.Clear()
	case OpTrim:
		d.TrimToSize()
	case OpContains:
		found = ringdeque.Contains(d, st.Values[0])
	case OpDump:
		fmt.Fprintln(out, d)
	case OpIterate:
		err = iterate(out, d)
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalid, st.Op)
	}

	switch {
	case st.WantErr && err == nil:
		return fmt.Errorf("%w: operation succeeded, want an error", ErrMismatch)
	case st.WantErr:
		return checkShape(d, st)
	case err != nil:
		return err
	}

	if st.Print {
		switch st.Op {
		case OpContains:
			fmt.Fprintln(out, found)
		case OpPopBack, OpPopFront, OpPeekBack, OpPeekFront:
			fmt.Fprintln(out, got)
		}
	}
	if st.Want != nil && got != *st.Want {
		return fmt.Errorf("%w: got %d, want %d", ErrMismatch, got, *st.Want)
	}
	if st.Found != nil && found != *st.Found {
		return fmt.Errorf("%w: contains %d = %t, want %t", ErrMismatch, st.Values[0], found, *st.Found)
	}
	return checkShape(d, st)
}

func checkShape(d *ringdeque.Deque[int], st *Step) error {
	if st.ExpectLen != nil && d.Len() != *st.ExpectLen {
		return fmt.Errorf("%w: length %d, want %d", ErrMismatch, d.Len(), *st.ExpectLen)
	}
	if st.Expect != nil {
		if got := d.ToSlice(); !slices.Equal(got, st.Expect) {
			return fmt.Errorf("%w: contents %v, want %v", ErrMismatch, got, st.Expect)
		}
	}
	return nil
}

// iterate prints every element through an Iterator, one per line.
func iterate(out io.Writer, d *ringdeque.Deque[int]) error {
	it := d.Iterator()
	defer it.Close()
	for {
		ok, err := it.Next()
		if err != nil || !ok {
			return err
		}
		v, err := it.Value()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, v)
	}
}
