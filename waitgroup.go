// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seakcutils

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// WaitGroup is a phase barrier shaped like sync.WaitGroup: Add before
// starting work, Done when a unit completes, Wait until the count
// reaches zero. Unlike sync.WaitGroup, Wait spins with
// [code.hybscloud.com/spin] instead of parking on a runtime futex,
// trading a busy core for avoiding a scheduler round-trip on barriers
// that resolve within microseconds, the same trade every ring in this
// package already makes.
//
// A negative counter (more Done than Add) panics, matching
// sync.WaitGroup.
type WaitGroup struct {
	_       pad
	counter atomix.Int64
	_       pad
}

// Add adds delta, which may be negative, to the counter.
func (w *WaitGroup) Add(delta int) {
	if w.counter.AddAcqRel(int64(delta)) < 0 {
		panic("seakcutils: negative WaitGroup counter")
	}
}

// Done decrements the counter by one.
func (w *WaitGroup) Done() {
	w.Add(-1)
}

// Wait spins until the counter reaches zero.
func (w *WaitGroup) Wait() {
	sw := spin.Wait{}
	for w.counter.LoadAcquire() > 0 {
		sw.Once()
	}
}

// Count returns the current counter value.
func (w *WaitGroup) Count() int64 {
	return w.counter.LoadAcquire()
}
