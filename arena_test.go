// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seakcutils_test

import (
	"testing"

	"github.com/seakerOner/seakcutils"
)

type arenaRecord struct {
	tag int
}

func TestArenaAllocDistinctSlots(t *testing.T) {
	a := seakcutils.NewArena[arenaRecord](seakcutils.WithRegionCapacity(8))

	slots := make([]*arenaRecord, 8)
	for i := range slots {
		r := a.Alloc()
		r.tag = i
		slots[i] = r
	}
	for i, s := range slots {
		if s.tag != i {
			t.Fatalf("slot %d: tag overwritten, got %d", i, s.tag)
		}
	}
	if got := a.Len(); got != 8 {
		t.Fatalf("Len: got %d, want 8", got)
	}
}

func TestArenaGrowsPastRegionCapacity(t *testing.T) {
	a := seakcutils.NewArena[arenaRecord](seakcutils.WithRegionCapacity(4), seakcutils.WithMaxRegions(4))

	for i := range 10 {
		r := a.Alloc()
		r.tag = i
	}
	// no panic means growth into a second (and part of a third) region
	// succeeded transparently.
}

func TestArenaResetStartsNewEpoch(t *testing.T) {
	a := seakcutils.NewArena[arenaRecord](seakcutils.WithRegionCapacity(4))

	if a.Epoch() != 0 {
		t.Fatalf("initial Epoch: got %d, want 0", a.Epoch())
	}

	a.Alloc().tag = 7
	a.Alloc().tag = 8
	a.Reset()

	if a.Epoch() != 1 {
		t.Fatalf("Epoch after Reset: got %d, want 1", a.Epoch())
	}
	if got := a.Len(); got != 0 {
		t.Fatalf("Len after Reset: got %d, want 0", got)
	}

	r := a.Alloc()
	if r.tag != 0 {
		t.Fatalf("slot reused after Reset was not cleared: tag=%d", r.tag)
	}
}

func TestArenaPanicsPastMaxRegions(t *testing.T) {
	a := seakcutils.NewArena[arenaRecord](seakcutils.WithRegionCapacity(2), seakcutils.WithMaxRegions(1))

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic past MaxRegions, got none")
		}
	}()

	for i := 0; i < 100; i++ {
		a.Alloc()
	}
}
