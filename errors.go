package ringdeque

import (
	"errors"
	"fmt"
)

/*****************************************************************************
 * SENTINEL ERRORS
 *****************************************************************************/

// ErrInvalidArgument is wrapped by every error caused by malformed caller
// input.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrEmpty is returned when popping or peeking an empty Deque.
var ErrEmpty = errors.New("deque is empty")

// ErrInvalidState is wrapped by every error caused by using an Iterator in a
// phase that does not allow the call.
var ErrInvalidState = errors.New("invalid iterator state")

// ErrNegativeCapacity is returned when asking for a negative capacity. It
// wraps ErrInvalidArgument.
var ErrNegativeCapacity = fmt.Errorf("%w: capacity cannot be negative", ErrInvalidArgument)

// ErrStale is returned by an Iterator whose Deque was structurally modified
// after the Iterator was created or last reset. It wraps ErrInvalidState.
var ErrStale = fmt.Errorf("%w: deque modified during iteration", ErrInvalidState)

// ErrNotStarted is returned by Iterator.Value before the first call to Next.
// It wraps ErrInvalidState.
var ErrNotStarted = fmt.Errorf("%w: iteration not started", ErrInvalidState)

// ErrEnded is returned by Iterator.Value once iteration is over. It wraps
// ErrInvalidState.
var ErrEnded = fmt.Errorf("%w: iteration ended", ErrInvalidState)

var (
	errNilSeq           = fmt.Errorf("%w: nil sequence", ErrInvalidArgument)
	errUnknownOrder     = fmt.Errorf("%w: unknown order", ErrInvalidArgument)
	errOffsetOutOfRange = fmt.Errorf("%w: offset out of range", ErrInvalidArgument)
	errShortDestination = fmt.Errorf("%w: destination too small", ErrInvalidArgument)
)
