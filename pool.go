// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seakcutils

import "sync"

// Task is a unit of pool work. dispatch lets a running task enqueue
// follow-up work onto the same pool without going through an external
// Submit call: it is bound to the worker's own Sender handle, so a task
// that spawns more tasks never contends with, or blocks behind, an
// external caller submitting through the pool's shared Sender.
type Task func(dispatch func(Task))

// Pool is a fixed-size set of worker goroutines draining a single [MPMC]
// ring of [Task] values.
//
// Every worker owns one Receiver and one Sender obtained from the same
// ring. Work submitted externally through [Pool.Submit] and
// continuations a task dispatches from inside its own body both funnel
// through the same ring, but a task's dispatch calls always go out
// through the dispatching worker's own Sender rather than a pool-wide
// one: since MPMC producers spin (rather than fail) when the ring is
// momentarily full, routing every dispatch through one shared Sender
// would let a burst of continuations from one worker starve external
// submitters indefinitely on that same handle. Per-worker Senders keep
// each worker's contribution to ring pressure independent.
type Pool struct {
	ring   *MPMC[Task]
	submit *Sender[Task]
	wg     sync.WaitGroup
	logger *Logger
}

// NewPool creates a Pool backed by an MPMC ring of the given capacity,
// with worker goroutines configured via opts (see [WithWorkers]).
func NewPool(capacity int, opts ...PoolOption) *Pool {
	o := newPoolOptions(opts)
	p := &Pool{
		ring:   NewMPMC[Task](capacity),
		logger: o.logger,
	}
	p.submit = p.ring.GetSender()

	for range o.workers {
		rx := p.ring.GetReceiver()
		tx := p.ring.GetSender()
		p.wg.Add(1)
		go p.worker(rx, tx)
	}

	p.logger.Info().
		Int(`workers`, o.workers).
		Int(`capacity`, p.ring.Cap()).
		Log(`seakcutils: pool started`)
	return p
}

func (p *Pool) worker(rx *Receiver[Task], tx *Sender[Task]) {
	defer p.wg.Done()
	defer func() {
		_ = rx.Close()
		_ = tx.Close()
	}()

	dispatch := func(t Task) {
		_ = tx.TrySend(&t)
	}

	for {
		task, err := rx.TryRecv()
		if err != nil {
			// only exit from a blocking MPMC receive is ErrClosed.
			return
		}
		task(dispatch)
	}
}

// Submit enqueues t for execution by some worker. Submit spins (rather
// than failing with ErrFull) under backpressure, per MPMC's send
// contract; it returns ErrClosed if the pool has been, or is being,
// shut down.
func (p *Pool) Submit(t Task) error {
	return p.submit.TrySend(&t)
}

// Cap returns the capacity of the pool's backing ring.
func (p *Pool) Cap() int {
	return p.ring.Cap()
}

// Shutdown closes the ring, which unblocks every worker's spinning
// Receive/Send with ErrClosed, waits for every worker goroutine to exit,
// then releases the ring's storage. A worker keeps running tasks already
// published in the ring until it claims a slot with nothing in it, so
// queued tasks it reaches still run; a send still spinning when the ring
// closes fails with ErrClosed, and its task is not run.
func (p *Pool) Shutdown() {
	_ = p.ring.Close()
	p.wg.Wait()
	_ = p.submit.Close()
	p.ring.Destroy()
	p.logger.Info().Log(`seakcutils: pool shutdown`)
}
