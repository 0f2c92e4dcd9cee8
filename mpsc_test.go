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

func TestMPSCConsumerEmptyIsNonBlocking(t *testing.T) {
	q := seakcutils.NewMPSC[int](4)
	rx := q.GetReceiver()

	if _, err := rx.TryRecv(); !errors.Is(err, seakcutils.ErrEmpty) {
		t.Fatalf("TryRecv on empty: got %v, want ErrEmpty", err)
	}
}

// TestMPSCContention mirrors the package's concrete contention scenario:
// several producers racing into a small ring, drained by one consumer.
func TestMPSCContention(t *testing.T) {
	const producers = 4
	const perProducer = 50000
	const total = producers * perProducer

	q := seakcutils.NewMPSC[int](1024)
	rx := q.GetReceiver()

	var sent sync.WaitGroup
	for range producers {
		tx := q.GetSender()
		sent.Add(1)
		go func() {
			defer sent.Done()
			defer tx.Close()
			for i := range perProducer {
				v := i
				for tx.TrySend(&v) != nil {
					// committed via FAA already; spins until room frees.
				}
			}
		}()
	}

	var received atomic.Int64
	done := make(chan struct{})
	go func() {
		for received.Load() < total {
			if _, err := rx.TryRecv(); err == nil {
				received.Add(1)
			}
		}
		close(done)
	}()

	sent.Wait()
	<-done

	if got := received.Load(); got != total {
		t.Fatalf("received %d messages, want %d", got, total)
	}
}

func TestMPSCProducerUnblocksOnClose(t *testing.T) {
	q := seakcutils.NewMPSC[int](2)
	tx := q.GetSender()

	v0 := 0
	if err := tx.TrySend(&v0); err != nil {
		t.Fatalf("TrySend(0): %v", err)
	}
	v1 := 1
	if err := tx.TrySend(&v1); err != nil {
		t.Fatalf("TrySend(1): %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		v := 2
		errCh <- tx.TrySend(&v) // ring full, commits via FAA, spins.
	}()

	if err := q.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := <-errCh; !errors.Is(err, seakcutils.ErrClosed) {
		t.Fatalf("TrySend on full ring after Close: got %v, want ErrClosed", err)
	}
}
