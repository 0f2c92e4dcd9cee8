// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seakcutils

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// MPSC is a multi-producer single-consumer bounded ring.
//
// Producers commit to a position with fetch-and-add on the shared
// producer cursor before they know whether that slot is free, so a
// producer whose claimed slot is still occupied must spin until the
// consumer frees it or the ring closes. There is no ErrFull return on
// this path.
//
// The single consumer owns its cursor outright and never blocks: it
// checks its target slot once and returns ErrEmpty immediately if the
// producer hasn't published into it yet.
type MPSC[T any] struct {
	lifecycle
	producerTracking
	_      pad
	tail   atomix.Uint64 // producer cursor, FAA by every producer
	_      pad
	head   atomix.Uint64 // consumer cursor, single reader
	_      pad
	buffer []seqSlot[T]
	mask   uint64
}

// NewMPSC creates a new MPSC ring. Capacity rounds up to the next power
// of 2; panics if capacity < 2.
func NewMPSC[T any](capacity int) *MPSC[T] {
	if capacity < 2 {
		panic("seakcutils: capacity must be >= 2")
	}
	n := uint64(roundToPow2(capacity))
	q := &MPSC[T]{
		buffer: make([]seqSlot[T], n),
		mask:   n - 1,
	}
	for i := range q.buffer {
		q.buffer[i].seq.StoreRelaxed(uint64(i))
	}
	return q
}

// trySend is a committed producer claim: once FAA has assigned p, the
// producer spins on its slot until it is free or the ring closes.
func (q *MPSC[T]) trySend(elem *T) error {
	if q.IsClosed() {
		return ErrClosed
	}

	p := q.tail.AddAcqRel(1) - 1
	slot := &q.buffer[p&q.mask]

	sw := spin.Wait{}
	for slot.seq.LoadAcquire() != p {
		if q.IsClosed() {
			return ErrClosed
		}
		sw.Once()
	}

	slot.data = *elem
	slot.seq.StoreRelease(p + 1)
	return nil
}

// tryRecv is the single consumer's non-blocking check: it never commits
// to a position it cannot immediately service.
func (q *MPSC[T]) tryRecv() (T, error) {
	head := q.head.LoadRelaxed()
	slot := &q.buffer[head&q.mask]

	if slot.seq.LoadAcquire() != head+1 {
		var zero T
		return zero, ErrEmpty
	}

	elem := slot.data
	var zero T
	slot.data = zero
	slot.seq.StoreRelease(head + uint64(len(q.buffer)))
	q.head.StoreRelaxed(head + 1)
	return elem, nil
}

// GetSender returns a new tracked Sender handle. Destroy waits for every
// issued Sender to close before releasing storage.
func (q *MPSC[T]) GetSender() *Sender[T] {
	q.addProducer()
	return newSender(q.trySend, q.removeProducer)
}

// GetReceiver returns the ring's single Receiver handle.
func (q *MPSC[T]) GetReceiver() *Receiver[T] {
	return newReceiver(q.tryRecv, nil)
}

// Destroy closes the ring, waits for every outstanding Sender to close,
// then releases storage.
func (q *MPSC[T]) Destroy() {
	_ = q.Close()
	q.waitProducersGone()
	q.buffer = nil
}

// Cap returns the ring's capacity.
func (q *MPSC[T]) Cap() int {
	return int(q.mask + 1)
}
