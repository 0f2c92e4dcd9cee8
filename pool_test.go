// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seakcutils_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/seakerOner/seakcutils"
)

func TestPoolRunsSubmittedTasks(t *testing.T) {
	p := seakcutils.NewPool(64, seakcutils.WithWorkers(4))
	defer p.Shutdown()

	const n = 1000
	var ran atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)

	for range n {
		if err := p.Submit(func(dispatch func(seakcutils.Task)) {
			defer wg.Done()
			ran.Add(1)
		}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	wg.Wait()
	if got := ran.Load(); got != n {
		t.Fatalf("ran: got %d, want %d", got, n)
	}
}

func TestPoolTaskDispatchesFollowUp(t *testing.T) {
	p := seakcutils.NewPool(16, seakcutils.WithWorkers(2))
	defer p.Shutdown()

	var wg sync.WaitGroup
	wg.Add(2)

	err := p.Submit(func(dispatch func(seakcutils.Task)) {
		defer wg.Done()
		dispatch(func(dispatch func(seakcutils.Task)) {
			defer wg.Done()
		})
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	wg.Wait()
}
