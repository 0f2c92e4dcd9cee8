// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seakcutils

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// SPMC is a single-producer multi-consumer bounded ring.
//
// The single producer owns its cursor outright and advances it with a
// plain load/store: no FAA is needed since there is, by construction,
// never a second producer to race. A producer whose target slot is not
// yet free returns ErrFull immediately; it never blocks.
//
// Consumers are blocking: each claims a position with fetch-and-add on
// the shared consumer cursor, then spins on that slot's sequence number
// until the producer has published into it or the ring closes. There is
// no ErrEmpty return on this path; an empty ring simply makes every
// consumer spin until data arrives or Close is called.
type SPMC[T any] struct {
	lifecycle
	consumerTracking
	_      pad
	tail   atomix.Uint64 // producer cursor, single writer
	_      pad
	head   atomix.Uint64 // consumer cursor, FAA by every consumer
	_      pad
	buffer []seqSlot[T]
	mask   uint64
}

// NewSPMC creates a new SPMC ring. Capacity rounds up to the next power
// of 2; panics if capacity < 2.
func NewSPMC[T any](capacity int) *SPMC[T] {
	if capacity < 2 {
		panic("seakcutils: capacity must be >= 2")
	}
	n := uint64(roundToPow2(capacity))
	q := &SPMC[T]{
		buffer: make([]seqSlot[T], n),
		mask:   n - 1,
	}
	for i := range q.buffer {
		q.buffer[i].seq.StoreRelaxed(uint64(i))
	}
	return q
}

// trySend is the single producer's non-blocking claim-and-publish: since
// there is only ever one producer, a slot that is not ready immediately
// means the ring is genuinely full.
func (q *SPMC[T]) trySend(elem *T) error {
	if q.IsClosed() {
		return ErrClosed
	}

	p := q.tail.LoadRelaxed()
	slot := &q.buffer[p&q.mask]
	if slot.seq.LoadAcquire() != p {
		return ErrFull
	}

	slot.data = *elem
	slot.seq.StoreRelease(p + 1)
	q.tail.StoreRelease(p + 1)
	return nil
}

// tryRecv is a blocking consumer claim: it commits to a position via FAA
// before it knows whether data is there, so it must spin until the
// producer publishes into that slot or the ring closes underneath it.
func (q *SPMC[T]) tryRecv() (T, error) {
	c := q.head.AddAcqRel(1) - 1
	slot := &q.buffer[c&q.mask]

	sw := spin.Wait{}
	for slot.seq.LoadAcquire() != c+1 {
		if q.IsClosed() {
			var zero T
			return zero, ErrClosed
		}
		sw.Once()
	}

	elem := slot.data
	var zero T
	slot.data = zero
	slot.seq.StoreRelease(c + uint64(len(q.buffer)))
	return elem, nil
}

// GetSender returns the ring's single Sender handle.
func (q *SPMC[T]) GetSender() *Sender[T] {
	return newSender(q.trySend, nil)
}

// GetReceiver returns a new tracked Receiver handle. Destroy waits for
// every issued Receiver to close before releasing storage.
func (q *SPMC[T]) GetReceiver() *Receiver[T] {
	q.addConsumer()
	return newReceiver(q.tryRecv, q.removeConsumer)
}

// Destroy closes the ring, waits for every outstanding Receiver to close,
// then releases storage.
func (q *SPMC[T]) Destroy() {
	_ = q.Close()
	q.waitConsumersGone()
	q.buffer = nil
}

// Cap returns the ring's capacity.
func (q *SPMC[T]) Cap() int {
	return int(q.mask + 1)
}
