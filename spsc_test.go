// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seakcutils_test

import (
	"errors"
	"testing"

	"github.com/seakerOner/seakcutils"
)

func TestSPSCBasic(t *testing.T) {
	q := seakcutils.NewSPSC[int](3)
	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}

	tx := q.GetSender()
	rx := q.GetReceiver()

	for i := range 4 {
		v := i + 100
		if err := tx.TrySend(&v); err != nil {
			t.Fatalf("TrySend(%d): %v", i, err)
		}
	}

	v := 999
	if err := tx.TrySend(&v); !errors.Is(err, seakcutils.ErrFull) {
		t.Fatalf("TrySend on full: got %v, want ErrFull", err)
	}

	for i := range 4 {
		got, err := rx.TryRecv()
		if err != nil {
			t.Fatalf("TryRecv(%d): %v", i, err)
		}
		if got != i+100 {
			t.Fatalf("TryRecv(%d): got %d, want %d", i, got, i+100)
		}
	}

	if _, err := rx.TryRecv(); !errors.Is(err, seakcutils.ErrEmpty) {
		t.Fatalf("TryRecv on empty: got %v, want ErrEmpty", err)
	}
}

func TestSPSCNullArg(t *testing.T) {
	q := seakcutils.NewSPSC[int](4)
	tx := q.GetSender()
	if err := tx.TrySend(nil); !errors.Is(err, seakcutils.ErrNullArg) {
		t.Fatalf("TrySend(nil): got %v, want ErrNullArg", err)
	}
}

func TestSPSCCloseDrainsThenClosed(t *testing.T) {
	q := seakcutils.NewSPSC[int](4)
	tx := q.GetSender()
	rx := q.GetReceiver()

	for i := range 3 {
		v := i
		if err := tx.TrySend(&v); err != nil {
			t.Fatalf("TrySend(%d): %v", i, err)
		}
	}

	if err := q.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	v := 99
	if err := tx.TrySend(&v); !errors.Is(err, seakcutils.ErrClosed) {
		t.Fatalf("TrySend after close: got %v, want ErrClosed", err)
	}

	// recv never checks closed state; draining continues until empty.
	for i := range 3 {
		got, err := rx.TryRecv()
		if err != nil {
			t.Fatalf("TryRecv(%d) after close: %v", i, err)
		}
		if got != i {
			t.Fatalf("TryRecv(%d) after close: got %d, want %d", i, got, i)
		}
	}

	if _, err := rx.TryRecv(); !errors.Is(err, seakcutils.ErrEmpty) {
		t.Fatalf("TryRecv on drained closed ring: got %v, want ErrEmpty", err)
	}

	if err := q.Close(); !errors.Is(err, seakcutils.ErrClosed) {
		t.Fatalf("double Close: got %v, want ErrClosed", err)
	}
}

func TestSPSCHandleCloseIndependentOfRing(t *testing.T) {
	q := seakcutils.NewSPSC[int](4)
	tx := q.GetSender()

	if err := tx.Close(); err != nil {
		t.Fatalf("Sender.Close: %v", err)
	}
	v := 1
	if err := tx.TrySend(&v); !errors.Is(err, seakcutils.ErrClosed) {
		t.Fatalf("TrySend on closed handle: got %v, want ErrClosed", err)
	}
	if q.IsClosed() {
		t.Fatalf("ring should remain open after only the Sender handle closes")
	}
}
