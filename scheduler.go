// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seakcutils

import (
	"context"
	"unsafe"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// JobFunc is the body of a scheduled unit of work.
type JobFunc func(ctx context.Context)

// continuationDone is a sentinel stored into JobHandle.continuation once
// a job has fully retired, so a continuation attached after the fact
// (rather than before, the common case) can tell it lost the race and
// must re-arrive its target itself instead of trusting the retired job
// to do it.
const continuationDone = ^uintptr(0)

// JobHandle is a record tracking one scheduled job: its function, the
// number of predecessors (plus one, for itself) it is still waiting on,
// and the single successor (if any) attached via [Scheduler.Then] or
// [Scheduler.Chain]. JobHandle records live inside a [Scheduler]'s
// internal [Arena] and are reused across epochs; a caller must not
// retain a JobHandle past the scheduler's next epoch reset.
type JobHandle struct {
	fn           JobFunc
	ctx          context.Context
	unfinished   atomix.Int64
	continuation atomix.Uintptr
}

// trySetContinuation attempts to attach next as h's single successor.
// Returns true if h had already fully retired by the time the attempt
// raced against it — the caller (Scheduler) is then responsible for
// manually arriving next itself, since h's own run already checked for
// a continuation and found none. Panics if h already has a continuation
// attached (even next itself): this package allows exactly one successor
// per job.
func (h *JobHandle) trySetContinuation(next *JobHandle) (alreadyRetired bool) {
	if h.continuation.CompareAndSwapAcqRel(0, uintptr(unsafe.Pointer(next))) {
		return false
	}
	if h.continuation.LoadAcquire() == continuationDone {
		return true
	}
	panic("seakcutils: job already has a continuation")
}

// finish claims ownership of h's continuation slot on h's behalf,
// exactly once, and reports whichever continuation had been attached
// before this call won the race against [JobHandle.trySetContinuation].
// This is the single linearization point that lets a continuation
// attached concurrently with h's own completion be handed off to
// exactly one of the two racing paths.
func (h *JobHandle) finish() *JobHandle {
	for {
		prev := h.continuation.LoadAcquire()
		if h.continuation.CompareAndSwapAcqRel(prev, continuationDone) {
			if prev == 0 || prev == continuationDone {
				return nil
			}
			return (*JobHandle)(unsafe.Pointer(prev))
		}
	}
}

// Scheduler is a dependency-aware job graph built on a fixed-size
// [Pool]. Spawn allocates a root job without submitting it; Then and
// Chain/ChainArr link already-spawned jobs into successor edges,
// submitting whichever job is now ready to run; Wait is the literal
// submit-for-execution verb (it does not block the caller, despite the
// name). JobHandle records are carved from an internal [Arena]; once
// completions since the last reset exceed the configured job ceiling
// (see [WithMaxJobs]) minus a small margin, the scheduler closes
// admission, drains in-flight jobs,
// and resets the arena to a fresh epoch.
type Scheduler struct {
	pool *Pool

	arena *Arena[JobHandle]

	_         pad
	accepting atomix.Uint64 // 1 = accepting_jobs, 0 = admission closed for reset
	_         pad
	active    atomix.Int64 // count of live handles, allocated but not yet fully retired
	_         pad
	completed atomix.Int64 // jobs_completed_epoch
	_         pad

	maxJobs int
	logger  *Logger
}

// NewScheduler creates a Scheduler dispatching work through pool. The
// scheduler's job arena is sized so its region count times
// DefaultRegionCapacity covers at least maxJobs slots (see
// [WithMaxJobs]).
func NewScheduler(pool *Pool, opts ...SchedulerOption) *Scheduler {
	o := newSchedulerOptions(opts)

	regionCapacity := DefaultRegionCapacity
	maxRegions := (o.maxJobs + regionCapacity - 1) / regionCapacity
	if maxRegions < 1 {
		maxRegions = 1
	}

	s := &Scheduler{
		pool: pool,
		arena: NewArena[JobHandle](
			WithRegionCapacity(regionCapacity),
			WithMaxRegions(maxRegions),
			WithArenaLogger(o.logger),
		),
		maxJobs: o.maxJobs,
		logger:  o.logger,
	}
	s.accepting.StoreRelease(1)
	s.logger.Info().Log(`seakcutils: scheduler spawned`)
	return s
}

// ActiveJobs returns the number of jobs currently spawned but not yet
// fully retired.
func (s *Scheduler) ActiveJobs() int64 {
	return s.active.LoadAcquire()
}

// CompletedThisEpoch returns the number of jobs that have completed
// since the arena's last Reset.
func (s *Scheduler) CompletedThisEpoch() int64 {
	return s.completed.LoadAcquire()
}

// Spawn allocates a root job with no predecessors and no successor yet.
// It spins while admission is closed for an epoch reset, then returns
// the handle — the job is not yet in the dispatch ring; submit it with
// Wait, or attach it to a Then/Chain, to actually run it.
func (s *Scheduler) Spawn(ctx context.Context, fn JobFunc) (*JobHandle, error) {
	if fn == nil {
		return nil, ErrNullArg
	}

	sw := spin.Wait{}
	for s.accepting.LoadAcquire() == 0 {
		sw.Once()
	}

	s.active.AddAcqRel(1)
	h := s.arena.Alloc()
	h.fn = fn
	h.ctx = ctx
	h.unfinished.StoreRelease(1)
	h.continuation.StoreRelease(0)
	return h, nil
}

// Wait submits handle for execution. Despite the name, this does not
// block the caller: it is the scheduling verb paired with Spawn for a
// standalone job that is not already the head of a Then/Chain edge
// (those submit their head job themselves).
func (s *Scheduler) Wait(handle *JobHandle) error {
	if handle == nil {
		return ErrNullArg
	}
	return s.schedule(handle)
}

// Then links first.continuation to next and bumps next's predecessor
// count, then submits first for execution. next only becomes ready once
// every job linked to it this way has completed; fan-in is expressed by
// calling Then once per predecessor against the same next.
func (s *Scheduler) Then(first, next *JobHandle) error {
	return s.attachContinuation(first, next)
}

// Chain links j1.continuation -> j2 -> ... -> jk end to end, then
// submits j1 for execution. Equivalent to calling Then once per
// consecutive pair, but links every pair before submitting anything.
func (s *Scheduler) Chain(handles ...*JobHandle) error {
	return s.ChainArr(handles)
}

// ChainArr is Chain taking its handles as a slice rather than variadic
// arguments; both share the same linking and submission behavior.
func (s *Scheduler) ChainArr(handles []*JobHandle) error {
	if len(handles) == 0 {
		return ErrNullArg
	}
	for _, h := range handles {
		if h == nil {
			return ErrNullArg
		}
	}
	for i := 0; i < len(handles)-1; i++ {
		cur, next := handles[i], handles[i+1]
		next.unfinished.AddAcqRel(1)
		if cur.trySetContinuation(next) {
			s.arrive(next, nil)
		}
	}
	return s.schedule(handles[0])
}

// attachContinuation implements the shared first->next linking step used
// by Then: bump next's predecessor count, attach the continuation, and
// if first had already fully retired before the attachment landed,
// arrive next on its behalf (first's own run found no continuation to
// hand off to, since this one did not exist yet). Finally submit first
// for execution.
func (s *Scheduler) attachContinuation(first, next *JobHandle) error {
	if first == nil || next == nil {
		return ErrNullArg
	}
	next.unfinished.AddAcqRel(1)
	if first.trySetContinuation(next) {
		s.arrive(next, nil)
	}
	return s.schedule(first)
}

// schedule is the shared enqueue primitive (spec's "schedule"): a job
// whose predecessor count has already reached zero has already run (or
// is a caller error) and is skipped rather than re-submitted.
func (s *Scheduler) schedule(h *JobHandle) error {
	if h.unfinished.LoadAcquire() == 0 {
		return nil
	}
	return s.pool.Submit(s.runTask(h))
}

// arrive accounts for one predecessor of next completing. Once every
// predecessor has arrived (next.unfinished reaches 1, the "self" term),
// next is dispatched — preferring dispatch (a worker's own Sender) over
// the pool's external Submit when called from inside a running job, per
// [Task]'s deadlock-avoidance contract.
func (s *Scheduler) arrive(next *JobHandle, dispatch func(Task)) {
	if next.unfinished.AddAcqRel(-1) != 1 {
		return
	}
	if dispatch != nil {
		dispatch(s.runTask(next))
		return
	}
	_ = s.schedule(next)
}

// runTask builds the worker-pool Task executing h, implementing the
// scheduler's worker body: drop at dispatch if h still has outstanding
// predecessors (it will be re-enqueued by the last one to arrive), run
// h.fn, retire h, hand off to its continuation if any, and otherwise run
// the arena health check.
func (s *Scheduler) runTask(h *JobHandle) Task {
	return func(dispatch func(Task)) {
		if h.unfinished.LoadAcquire() != 1 {
			return
		}

		h.fn(h.ctx)

		completed := s.completed.AddAcqRel(1)
		h.unfinished.StoreRelease(0)
		next := h.finish()

		// active_jobs must drop before the arena health check can safely
		// spin on it reaching zero — this job is the one retiring, and a
		// literal step order (health check, then decrement) would have it
		// spin on its own still-counted slot whenever it is the last job
		// in flight, which is exactly the case the health check exists to
		// handle.
		s.active.AddAcqRel(-1)

		if next != nil {
			s.arrive(next, dispatch)
			return
		}
		s.checkArenaHealth(completed)
	}
}

// checkArenaHealth triggers an epoch reset once completions since the
// last reset pass within schedulerResetMargin of maxJobs.
// Only one concurrent caller performs the reset: the accepting_jobs
// admission gate doubles as that guard, via compare-and-swap.
func (s *Scheduler) checkArenaHealth(completed int64) {
	if completed <= int64(s.maxJobs-schedulerResetMargin) {
		return
	}
	if !s.accepting.CompareAndSwapAcqRel(1, 0) {
		return // another completion already owns the reset in progress
	}

	sw := spin.Wait{}
	for s.active.LoadAcquire() != 0 {
		sw.Once()
	}

	s.arena.Reset()
	s.completed.StoreRelease(0)
	s.accepting.StoreRelease(1)

	s.logger.Debug().
		Int64(`completed`, completed).
		Log(`seakcutils: scheduler epoch reset`)
}

// Shutdown stops accepting new jobs and shuts down the underlying pool,
// which waits for its workers to exit, so a job already running finishes
// first. Jobs not yet submitted, and continuations that become ready
// after the ring has closed, do not run; pair job bodies with an
// external [WaitGroup] first if that matters to the caller.
func (s *Scheduler) Shutdown() {
	s.accepting.StoreRelease(0)
	s.pool.Shutdown()
	s.logger.Info().Log(`seakcutils: scheduler shutdown`)
}
