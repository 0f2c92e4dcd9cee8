// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seakcutils_test

import (
	"sync/atomic"
	"testing"

	"github.com/seakerOner/seakcutils"
)

func TestWaitGroupBasic(t *testing.T) {
	var wg seakcutils.WaitGroup
	var ran atomic.Int32

	const n = 100
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			ran.Add(1)
		}()
	}
	wg.Wait()

	if got := ran.Load(); got != n {
		t.Fatalf("ran: got %d, want %d", got, n)
	}
	if got := wg.Count(); got != 0 {
		t.Fatalf("Count after Wait: got %d, want 0", got)
	}
}

func TestWaitGroupNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on negative counter")
		}
	}()
	var wg seakcutils.WaitGroup
	wg.Done()
}
