// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seakcutils

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// MPMC is a multi-producer multi-consumer bounded ring. It backs [Pool]
// and [Scheduler]: both sides commit to a cursor position via
// fetch-and-add before knowing whether their target slot is ready, so
// both producers and consumers spin on their claimed slot until the
// opposite side catches up or the ring closes. Neither side ever returns
// ErrFull or ErrEmpty; the only failure exit from a spin is ErrClosed.
type MPMC[T any] struct {
	lifecycle
	producerTracking
	consumerTracking
	_      pad
	tail   atomix.Uint64 // producer cursor, FAA by every producer
	_      pad
	head   atomix.Uint64 // consumer cursor, FAA by every consumer
	_      pad
	buffer []seqSlot[T]
	mask   uint64
}

// NewMPMC creates a new MPMC ring. Capacity rounds up to the next power
// of 2 (a capacity of 1 becomes 2); panics if capacity < 1.
func NewMPMC[T any](capacity int) *MPMC[T] {
	if capacity < 1 {
		panic("seakcutils: capacity must be >= 1")
	}
	n := uint64(roundToPow2(capacity))
	q := &MPMC[T]{
		buffer: make([]seqSlot[T], n),
		mask:   n - 1,
	}
	for i := range q.buffer {
		q.buffer[i].seq.StoreRelaxed(uint64(i))
	}
	return q
}

// trySend commits via FAA and spins until its slot frees or the ring
// closes. Capacity of n slots is enforced purely through this spin: a
// producer cannot outrun consumers by more than the number of producers
// currently contending.
func (q *MPMC[T]) trySend(elem *T) error {
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

// tryRecv commits via FAA and spins until its slot is published or the
// ring closes.
func (q *MPMC[T]) tryRecv() (T, error) {
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

// GetSender returns a new tracked Sender handle.
func (q *MPMC[T]) GetSender() *Sender[T] {
	q.addProducer()
	return newSender(q.trySend, q.removeProducer)
}

// GetReceiver returns a new tracked Receiver handle.
func (q *MPMC[T]) GetReceiver() *Receiver[T] {
	q.addConsumer()
	return newReceiver(q.tryRecv, q.removeConsumer)
}

// Destroy closes the ring, waits for every outstanding Sender and
// Receiver to close, then releases storage. Spinning producers/consumers
// unblock via ErrClosed as soon as Close flips the lifecycle flag, so
// this wait completes once every handle owner observes that and closes
// its handle.
func (q *MPMC[T]) Destroy() {
	_ = q.Close()
	q.waitProducersGone()
	q.waitConsumersGone()
	q.buffer = nil
}

// Cap returns the ring's capacity.
func (q *MPMC[T]) Cap() int {
	return int(q.mask + 1)
}
