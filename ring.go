// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seakcutils

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// lifecycle is the shared Open/Closed state embedded by every ring
// topology. Closure is sticky: once Closed, a ring never reopens.
type lifecycle struct {
	_      pad
	closed atomix.Bool
	_      pad
}

// Close flips the ring to Closed. Returns ErrClosed if it was already
// closed; closing twice is a caller error, not a crash.
func (l *lifecycle) Close() error {
	if !l.closed.CompareAndSwapAcqRel(false, true) {
		return ErrClosed
	}
	return nil
}

// IsClosed reports whether the ring has been closed.
func (l *lifecycle) IsClosed() bool {
	return l.closed.LoadAcquire()
}

// producerTracking counts live Sender handles for topologies where a
// Destroy call must wait for every producer endpoint to close (MPSC, MPMC).
type producerTracking struct {
	_              pad
	producersAlive atomix.Int64
	_              pad
}

func (t *producerTracking) addProducer() { t.producersAlive.AddAcqRel(1) }

func (t *producerTracking) removeProducer() { t.producersAlive.AddAcqRel(-1) }

func (t *producerTracking) waitProducersGone() {
	sw := spin.Wait{}
	for t.producersAlive.LoadAcquire() > 0 {
		sw.Once()
	}
}

// consumerTracking counts live Receiver handles for topologies where a
// Destroy call must wait for every consumer endpoint to close (SPMC, MPMC).
type consumerTracking struct {
	_              pad
	consumersAlive atomix.Int64
	_              pad
}

func (t *consumerTracking) addConsumer() { t.consumersAlive.AddAcqRel(1) }

func (t *consumerTracking) removeConsumer() { t.consumersAlive.AddAcqRel(-1) }

func (t *consumerTracking) waitConsumersGone() {
	sw := spin.Wait{}
	for t.consumersAlive.LoadAcquire() > 0 {
		sw.Once()
	}
}

// Sender is a lightweight, borrowed handle for enqueueing into a ring.
//
// A Sender carries its own Open/Closed status independent of the ring's:
// closing a Sender refuses further sends through that handle even while
// the ring, or other Sender handles on it, remain open.
type Sender[T any] struct {
	_       pad
	closed  atomix.Bool
	send    func(elem *T) error
	onClose func()
}

func newSender[T any](send func(*T) error, onClose func()) *Sender[T] {
	return &Sender[T]{send: send, onClose: onClose}
}

// TrySend enqueues elem through this handle. Returns ErrNullArg if elem is
// nil, ErrClosed if this handle or the underlying ring is closed, ErrFull
// if an SPSC or SPMC ring is at capacity (MPSC and MPMC senders spin
// instead).
func (s *Sender[T]) TrySend(elem *T) error {
	if elem == nil {
		return ErrNullArg
	}
	if s.closed.LoadAcquire() {
		return ErrClosed
	}
	return s.send(elem)
}

// Close closes this Sender handle. On a tracked topology (MPSC, MPMC) this
// decrements the ring's live-producer count, which a concurrent Destroy
// call may be waiting on.
func (s *Sender[T]) Close() error {
	if !s.closed.CompareAndSwapAcqRel(false, true) {
		return ErrClosed
	}
	if s.onClose != nil {
		s.onClose()
	}
	return nil
}

// IsClosed reports whether this Sender handle has been closed.
func (s *Sender[T]) IsClosed() bool {
	return s.closed.LoadAcquire()
}

// Receiver is a lightweight, borrowed handle for dequeueing from a ring.
//
// A Receiver carries its own Open/Closed status independent of the ring's:
// a closed Receiver returns ErrClosed even if the ring still holds
// messages.
type Receiver[T any] struct {
	_       pad
	closed  atomix.Bool
	recv    func() (T, error)
	onClose func()
}

func newReceiver[T any](recv func() (T, error), onClose func()) *Receiver[T] {
	return &Receiver[T]{recv: recv, onClose: onClose}
}

// TryRecv dequeues through this handle. Returns ErrClosed if this handle
// is closed, ErrEmpty if the ring has no element ready, or (for blocking
// consumers) ErrClosed if the ring closes while waiting.
func (r *Receiver[T]) TryRecv() (T, error) {
	if r.closed.LoadAcquire() {
		var zero T
		return zero, ErrClosed
	}
	return r.recv()
}

// Close closes this Receiver handle. On a tracked topology (SPMC, MPMC)
// this decrements the ring's live-consumer count.
func (r *Receiver[T]) Close() error {
	if !r.closed.CompareAndSwapAcqRel(false, true) {
		return ErrClosed
	}
	if r.onClose != nil {
		r.onClose()
	}
	return nil
}

// IsClosed reports whether this Receiver handle has been closed.
func (r *Receiver[T]) IsClosed() bool {
	return r.closed.LoadAcquire()
}
