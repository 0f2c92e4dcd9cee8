// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seakcutils_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/seakerOner/seakcutils"
)

// TestMPMCCapacityOneSerializes exercises the package's capacity-1
// guarantee: producers and consumers serialize through the single slot,
// but every message is still delivered exactly once.
func TestMPMCCapacityOneSerializes(t *testing.T) {
	const n = 5000
	q := seakcutils.NewMPMC[int](1)
	if q.Cap() != 2 {
		// capacity rounds up to the next power of 2; 1 -> 2.
		t.Fatalf("Cap: got %d, want 2", q.Cap())
	}

	var seen [n]atomic.Int32
	var producers, consumers sync.WaitGroup

	for range 4 {
		tx := q.GetSender()
		producers.Add(1)
		go func() {
			defer producers.Done()
			defer tx.Close()
			for {
				// cooperative partition of the value space across producers
				// would complicate this test; instead every producer races
				// to send from a shared counter.
				v, ok := nextValue(&shared)
				if !ok {
					return
				}
				for tx.TrySend(&v) != nil {
				}
			}
		}()
	}

	var received atomic.Int64
	for range 4 {
		rx := q.GetReceiver()
		consumers.Add(1)
		go func() {
			defer consumers.Done()
			for {
				v, err := rx.TryRecv()
				if err != nil {
					_ = rx.Close()
					return
				}
				seen[v].Add(1)
				received.Add(1)
			}
		}()
	}

	producers.Wait()
	q.Destroy()
	consumers.Wait()

	if got := received.Load(); got != n {
		t.Fatalf("received %d messages, want %d", got, n)
	}
	for i := range n {
		if got := seen[i].Load(); got != 1 {
			t.Fatalf("value %d delivered %d times, want exactly 1", i, got)
		}
	}
}

var shared atomic.Int64

func nextValue(counter *atomic.Int64) (int, bool) {
	const n = 5000
	v := counter.Add(1) - 1
	if v >= n {
		return 0, false
	}
	return int(v), true
}

func TestMPMCConsumerUnblocksOnClose(t *testing.T) {
	q := seakcutils.NewMPMC[int](4)
	rx := q.GetReceiver()

	recvErr := make(chan error, 1)
	go func() {
		_, err := rx.TryRecv() // ring empty, spins.
		recvErr <- err
	}()

	if err := q.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := <-recvErr; !errors.Is(err, seakcutils.ErrClosed) {
		t.Fatalf("TryRecv on empty ring after close: got %v, want ErrClosed", err)
	}
}

func TestMPMCProducerUnblocksOnClose(t *testing.T) {
	q := seakcutils.NewMPMC[int](2)
	tx := q.GetSender()

	for i := range 2 {
		v := i
		if err := tx.TrySend(&v); err != nil {
			t.Fatalf("TrySend(%d): %v", i, err)
		}
	}

	sendErr := make(chan error, 1)
	go func() {
		v := 99
		sendErr <- tx.TrySend(&v) // ring full, commits via FAA, spins.
	}()

	if err := q.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := <-sendErr; !errors.Is(err, seakcutils.ErrClosed) {
		t.Fatalf("TrySend on full ring after close: got %v, want ErrClosed", err)
	}
}
