// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seakcutils

import (
	"unsafe"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// arenaRegion is one fixed-size segment of an Arena. Every region carries
// its own epoch stamp, set when the region is first created and
// refreshed, lazily, the first time an allocation lands in it after a
// Reset.
type arenaRegion[T any] struct {
	_      pad
	epoch  atomix.Uint64
	_      pad
	buffer []T
}

// Arena is a segmented bump allocator advancing through epochs.
//
// Allocation is a single fetch-and-add against a global slot counter: no
// locking, no free list, no GC pressure from per-item allocation. Region
// descriptors are published through a fixed-size table of atomic
// pointers (itself sized to MaxRegions at construction), grown
// lock-free: exactly one allocator wins a compare-and-swap on
// regionsInUse to create a given region, and every loser spins until
// that region's pointer is published. Growing past MaxRegions panics
// with [ErrCapacityExceeded], since that signals a caller sizing mistake
// rather than a recoverable runtime condition.
//
// Reset starts a new epoch in O(1): it only bumps the epoch counter and
// rewinds the slot counter to zero. Existing regions are not walked or
// cleared; each region's backing storage is lazily reclaimed the next
// time an allocation actually lands in it (stamped with the new epoch
// the first time [Arena.Alloc] touches a stale slot there), and every
// slot Alloc hands out is individually zeroed before return, so no data
// from a prior epoch is ever observable through a freshly allocated
// pointer.
type Arena[T any] struct {
	_            pad
	count        atomix.Uint64 // next slot index across all regions
	_            pad
	currentEpoch atomix.Uint64
	_            pad
	regionsInUse atomix.Uint64
	_            pad

	regions        []atomix.Uintptr // fixed-length table of *arenaRegion[T], len == maxRegions
	regionCapacity int
	maxRegions     int
	logger         *Logger
}

// NewArena creates an Arena with region 0 allocated eagerly, as required
// for any allocation to proceed without a first-touch race.
func NewArena[T any](opts ...ArenaOption) *Arena[T] {
	o := newArenaOptions(opts)
	a := &Arena[T]{
		regionCapacity: o.regionCapacity,
		maxRegions:     o.maxRegions,
		logger:         o.logger,
		regions:        make([]atomix.Uintptr, o.maxRegions),
	}
	region0 := a.newRegion()
	region0.epoch.StoreRelease(0)
	a.regions[0].StoreRelease(uintptr(unsafe.Pointer(region0)))
	a.regionsInUse.StoreRelease(1)
	return a
}

func (a *Arena[T]) newRegion() *arenaRegion[T] {
	return &arenaRegion[T]{buffer: make([]T, a.regionCapacity)}
}

// Alloc claims the next slot, zeroing it first, and returns a pointer
// into the arena's backing storage. The pointer remains valid until the
// arena's next Reset recycles the region it lives in.
func (a *Arena[T]) Alloc() *T {
	slot := a.count.AddAcqRel(1) - 1
	r := slot / uint64(a.regionCapacity)
	off := slot % uint64(a.regionCapacity)
	region := a.ensureRegion(r)
	ptr := &region.buffer[off]
	var zero T
	*ptr = zero
	return ptr
}

// Add allocates a slot and copies v into it, returning the slot's
// pointer.
func (a *Arena[T]) Add(v T) *T {
	ptr := a.Alloc()
	*ptr = v
	return ptr
}

// Get returns a pointer to the i'th allocated slot, or (nil, false) if i
// is out of bounds. Callers must not race Get against a concurrent Alloc
// targeting the same index.
func (a *Arena[T]) Get(i int) (*T, bool) {
	if i < 0 || uint64(i) >= a.count.LoadAcquire() {
		return nil, false
	}
	idx := uint64(i)
	r := idx / uint64(a.regionCapacity)
	off := idx % uint64(a.regionCapacity)
	p := a.regions[r].LoadAcquire()
	if p == 0 {
		return nil, false
	}
	region := (*arenaRegion[T])(unsafe.Pointer(p))
	return &region.buffer[off], true
}

// GetLast returns a pointer to the most recently allocated slot, or
// (nil, false) if nothing has been allocated this epoch.
func (a *Arena[T]) GetLast() (*T, bool) {
	n := a.count.LoadAcquire()
	if n == 0 {
		return nil, false
	}
	return a.Get(int(n - 1))
}

// ensureRegion returns region r, creating it if this is the first
// allocation to reach it, or lazily stamping it into the current epoch
// if it is being recycled from a prior one.
func (a *Arena[T]) ensureRegion(r uint64) *arenaRegion[T] {
	if r >= uint64(a.maxRegions) {
		panic(ErrCapacityExceeded)
	}

	// Regions are created in order: wait until every earlier region has
	// been claimed by the allocator holding a slot in it.
	sw := spin.Wait{}
	used := a.regionsInUse.LoadAcquire()
	for used < r {
		sw.Once()
		used = a.regionsInUse.LoadAcquire()
	}

	if used == r && a.regionsInUse.CompareAndSwapAcqRel(r, r+1) {
		region := a.newRegion()
		region.epoch.StoreRelease(a.currentEpoch.LoadAcquire())
		a.regions[r].StoreRelease(uintptr(unsafe.Pointer(region)))
		a.logger.Info().
			Uint64(`region`, r).
			Uint64(`epoch`, a.currentEpoch.LoadAcquire()).
			Log(`seakcutils: arena region grown`)
		return region
	}

	// Another allocator created, or is still creating, this region; spin
	// until its pointer is published.
	for a.regions[r].LoadAcquire() == 0 {
		sw.Once()
	}
	return a.touchRegion(r)
}

// touchRegion lazily stamps an already-published region into the
// current epoch the first time it is touched after a Reset. Only one
// racing allocator performs the stamp; the rest observe it already done.
func (a *Arena[T]) touchRegion(r uint64) *arenaRegion[T] {
	region := (*arenaRegion[T])(unsafe.Pointer(a.regions[r].LoadAcquire()))
	epoch := a.currentEpoch.LoadAcquire()
	for {
		regionEpoch := region.epoch.LoadAcquire()
		if regionEpoch == epoch {
			return region
		}
		if region.epoch.CompareAndSwapAcqRel(regionEpoch, epoch) {
			return region
		}
	}
}

// Reset starts a new epoch in O(1): every previously returned pointer is
// invalid by contract from this call onward.
func (a *Arena[T]) Reset() {
	epoch := a.currentEpoch.AddAcqRel(1)
	a.count.StoreRelease(0)
	a.logger.Info().
		Uint64(`epoch`, epoch).
		Uint64(`regions`, a.regionsInUse.LoadAcquire()).
		Log(`seakcutils: arena epoch reset`)
}

// Free releases every region this arena holds and zeroes its counters.
// The arena must not be used concurrently with Free.
func (a *Arena[T]) Free() {
	for i := range a.regions {
		a.regions[i].StoreRelease(0)
	}
	a.count.StoreRelease(0)
	a.currentEpoch.StoreRelease(0)
	a.regionsInUse.StoreRelease(0)
}

// Epoch returns the arena's current epoch number, incremented once per
// Reset call.
func (a *Arena[T]) Epoch() uint64 {
	return a.currentEpoch.LoadAcquire()
}

// Len returns the number of slots allocated since the last Reset.
func (a *Arena[T]) Len() int {
	return int(a.count.LoadAcquire())
}
