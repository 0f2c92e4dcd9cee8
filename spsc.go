// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seakcutils

import "code.hybscloud.com/atomix"

// SPSC is a single-producer single-consumer bounded ring.
//
// Based on Lamport's ring buffer with cached index optimization: the
// producer caches the consumer's last-observed position and vice versa,
// reducing cross-core cache line traffic to one refresh per wrap rather
// than one per element.
//
// SPSC tracks no endpoint counts: Destroy does not wait for Sender or
// Receiver handles to close, since there can only ever be one of each and
// the caller is responsible for ensuring no live operations remain.
type SPSC[T any] struct {
	lifecycle
	_          pad
	head       atomix.Uint64 // consumer cursor
	_          pad
	cachedTail uint64
	_          pad
	tail       atomix.Uint64 // producer cursor
	_          pad
	cachedHead uint64
	_          pad
	buffer     []T
	mask       uint64
}

// NewSPSC creates a new SPSC ring. Capacity rounds up to the next power of
// 2; panics if capacity < 2.
func NewSPSC[T any](capacity int) *SPSC[T] {
	if capacity < 2 {
		panic("seakcutils: capacity must be >= 2")
	}
	n := uint64(roundToPow2(capacity))
	return &SPSC[T]{
		buffer: make([]T, n),
		mask:   n - 1,
	}
}

// trySend implements try_send: the Closed check comes first, then
// capacity.
func (q *SPSC[T]) trySend(elem *T) error {
	if q.IsClosed() {
		return ErrClosed
	}

	tail := q.tail.LoadRelaxed()
	if tail-q.cachedHead > q.mask {
		q.cachedHead = q.head.LoadAcquire()
		if tail-q.cachedHead > q.mask {
			return ErrFull
		}
	}

	q.buffer[tail&q.mask] = *elem
	q.tail.StoreRelease(tail + 1)
	return nil
}

// tryRecv implements recv: only emptiness is checked, so the consumer may
// continue draining after Close until the ring is observably empty.
func (q *SPSC[T]) tryRecv() (T, error) {
	head := q.head.LoadRelaxed()
	if head >= q.cachedTail {
		q.cachedTail = q.tail.LoadAcquire()
		if head >= q.cachedTail {
			var zero T
			return zero, ErrEmpty
		}
	}

	elem := q.buffer[head&q.mask]
	var zero T
	q.buffer[head&q.mask] = zero
	q.head.StoreRelease(head + 1)
	return elem, nil
}

// GetSender returns the ring's single Sender handle.
func (q *SPSC[T]) GetSender() *Sender[T] {
	return newSender(q.trySend, nil)
}

// GetReceiver returns the ring's single Receiver handle.
func (q *SPSC[T]) GetReceiver() *Receiver[T] {
	return newReceiver(q.tryRecv, nil)
}

// Destroy closes the ring and releases its storage. SPSC has no endpoint
// counts to wait on; the caller must ensure no live send/recv is in
// flight.
func (q *SPSC[T]) Destroy() {
	_ = q.Close()
	q.buffer = nil
}

// Cap returns the ring's capacity.
func (q *SPSC[T]) Cap() int {
	return int(q.mask + 1)
}
