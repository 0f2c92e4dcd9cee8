// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package seakcutils provides bounded lock-free ring buffers, an
// epoch-based region arena, a wait-group phase barrier, and a
// dependency-aware job scheduler built on top of them.
//
// # Rings
//
// Four ring topologies are provided, named by their producer/consumer
// cardinality:
//
//	SPSC: Single-Producer Single-Consumer
//	SPMC: Single-Producer Multi-Consumer
//	MPSC: Multi-Producer Single-Consumer
//	MPMC: Multi-Producer Multi-Consumer
//
// All four share the same endpoint shape: a ring is created with a
// direct constructor, handles are obtained from it with GetSender and
// GetReceiver, and traffic flows exclusively through those handles.
//
//	q := seakcutils.NewSPSC[Event](1024)
//	tx := q.GetSender()
//	rx := q.GetReceiver()
//
//	go func() {
//	    backoff := iox.Backoff{}
//	    for ev := range source {
//	        for tx.TrySend(&ev) != nil {
//	            backoff.Wait()
//	        }
//	        backoff.Reset()
//	    }
//	}()
//
//	go func() {
//	    backoff := iox.Backoff{}
//	    for {
//	        ev, err := rx.TryRecv()
//	        if err != nil {
//	            backoff.Wait()
//	            continue
//	        }
//	        backoff.Reset()
//	        process(ev)
//	    }
//	}()
//
// SPSC and SPMC senders never block: a full ring returns [ErrFull]
// immediately, since the single producer can safely inspect its target
// slot before committing to a cursor position. MPSC and MPMC senders
// commit to a position with fetch-and-add before they know whether the
// ring has room, so a full ring makes TrySend spin until a consumer
// frees a slot or the ring closes; the only error it can return is
// [ErrClosed].
//
// Symmetrically, SPSC and MPSC receivers never block, returning
// [ErrEmpty] immediately on an empty ring, while SPMC and MPMC receivers
// commit via fetch-and-add and spin until data arrives or [ErrClosed].
//
// Closing a ring is sticky and propagates to every spinning handle:
// Close flips the ring to the Closed state, which every spin loop polls,
// so blocked producers and consumers on MPSC/SPMC/MPMC unblock with
// [ErrClosed] as soon as Close is called, without needing a dummy
// element pushed through the ring. Destroy closes the ring, waits for
// every outstanding Sender/Receiver handle on tracked topologies (SPMC,
// MPSC, MPMC) to close, and releases the backing storage.
//
// # Region arena
//
// [Arena] is a segmented bump allocator organized into fixed-size
// regions and advancing through epochs. Allocation is a single
// fetch-and-add against one slot counter shared by all regions; the
// first allocation that lands past the last existing region creates the
// next one, and every slot is zeroed as [Arena.Alloc] hands it out.
// [Arena.Reset] starts a new epoch, recycling regions instead of freeing
// them.
//
// # WaitGroup
//
// [WaitGroup] is a spin-based phase barrier: Add/Done/Wait, identical in
// shape to sync.WaitGroup but built on [code.hybscloud.com/atomix] and
// [code.hybscloud.com/spin] instead of runtime futexes, for call sites
// that already pay the cost of spin-waiting elsewhere in a pipeline and
// want to avoid a scheduler round-trip for a barrier that usually
// resolves within microseconds.
//
// # Worker pool and scheduler
//
// [Pool] is a fixed-size set of worker goroutines draining a single
// [MPMC] ring of jobs. [Scheduler] builds a dependency-aware job graph
// on top of a Pool: Spawn allocates a job without submitting it; Then
// links two already-spawned JobHandles into a one-shot continuation
// edge and submits the first; Chain and ChainArr link a whole list of
// already-spawned handles end to end before submitting the first one;
// Wait submits a standalone handle for execution and, despite the name,
// does not block the caller. JobHandle records live in an [Arena],
// reset to a fresh epoch once completions since the last reset climb
// within a small margin of the scheduler's configured job ceiling.
//
// # Error handling
//
// Every component shares one error vocabulary: [ErrNullArg], [ErrFull],
// [ErrEmpty], [ErrClosed], [ErrAllocFailure], and [ErrCapacityExceeded].
// ErrFull and ErrEmpty wrap [code.hybscloud.com/iox]'s ErrWouldBlock for
// ecosystem-wide classification:
//
//	seakcutils.IsWouldBlock(err)  // true if ring full/empty
//	seakcutils.IsSemantic(err)    // true if control flow signal
//	seakcutils.IsNonFailure(err)  // true if nil or would-block
//	seakcutils.IsClosed(err)      // true if ErrClosed
//
// ErrCapacityExceeded is never returned as a value: it is the panic
// value used when a caller asks the arena for a region beyond
// MaxRegions, since that condition signals a caller-side bound violation
// rather than a recoverable runtime state.
//
// # Capacity
//
// Ring capacities round up to the next power of 2. NewSPSC, NewSPMC and
// NewMPSC panic if asked for fewer than 2 slots; NewMPMC accepts 1 and
// rounds it up to 2. Arena region capacity is used as given, with values
// below 1 falling back to [DefaultRegionCapacity]. Length is intentionally not exposed on
// rings: an accurate count under concurrent access requires the kind of
// cross-core synchronization the whole package exists to avoid.
//
// # Logging
//
// Administrative lifecycle events — pool start/shutdown, scheduler
// spawn/shutdown, arena region growth, and arena epoch resets — are
// logged through a [Logger] backed by [github.com/joeycumines/logiface]
// and [github.com/joeycumines/stumpy]. The package default writes to
// stderr; [NewFileLogger] builds one writing through an
// [github.com/agilira/lethe] rotating file sink. Nothing on a ring or
// wait group hot path ever logs, and an arena Alloc logs only when it
// creates a new region.
//
// # Race detection
//
// Go's race detector tracks explicit synchronization primitives but
// cannot observe happens-before relationships established purely
// through acquire-release atomics on separate variables. The sequence
// numbers guarding each ring slot are correct under the memory model but
// can produce false positives under -race. [RaceEnabled] reports whether
// the race detector is active; the tests in this package do not consult
// it and run the same way under -race.
package seakcutils
