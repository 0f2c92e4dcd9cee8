// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seakcutils

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// Error taxonomy shared by every ring, the region arena, and the scheduler.
//
// ErrFull and ErrEmpty are non-failure control-flow signals: they wrap
// [iox.ErrWouldBlock] so that [iox.IsWouldBlock], [iox.IsSemantic] and
// [iox.IsNonFailure] classify them correctly, the same way the teacher
// package aliases its own queue errors directly to iox.ErrWouldBlock. They
// are kept as distinct sentinels (rather than collapsed into one, as the
// teacher does) because this spec's ring contract requires Enqueue and
// Dequeue to be separately distinguishable at the call site.
var (
	// ErrNullArg is returned when a required handle or argument is absent.
	ErrNullArg = errors.New("seakcutils: null argument")

	// ErrFull is returned by a non-blocking Send when the ring is at capacity.
	ErrFull = fmt.Errorf("seakcutils: ring full: %w", iox.ErrWouldBlock)

	// ErrEmpty is returned by a non-blocking Recv when the ring has no element.
	ErrEmpty = fmt.Errorf("seakcutils: ring empty: %w", iox.ErrWouldBlock)

	// ErrClosed is returned once a ring or one of its endpoint handles has
	// been closed. Closure is sticky: a closed ring or handle never reopens.
	ErrClosed = errors.New("seakcutils: closed")

	// ErrAllocFailure is surfaced when storage for a ring or region could
	// not be allocated.
	ErrAllocFailure = errors.New("seakcutils: allocation failure")

	// ErrCapacityExceeded is the sentinel value panicked with when the
	// region arena is asked for a region index at or beyond MaxRegions.
	// The arena's ensure_region contract is fail-fast: this is never
	// returned as an error value, only panicked.
	ErrCapacityExceeded = errors.New("seakcutils: region capacity exceeded")
)

// IsWouldBlock reports whether err is ErrFull or ErrEmpty (or wraps
// [iox.ErrWouldBlock] some other way). Delegates to [iox.IsWouldBlock].
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal rather than a
// failure. Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents nil or a non-failure
// condition. Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}

// IsClosed reports whether err is ErrClosed.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}
