// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seakcutils

import "code.hybscloud.com/atomix"

// seqSlot is the per-slot sequence-discipline cell shared by SPMC, MPSC
// and MPMC: seq is initialized to the slot's own index, becomes writable
// when seq equals the producer cursor that targets it, and becomes
// readable when seq equals cursor+1. This is the sole synchronizer
// between concurrent producers and/or consumers on a slot; it guarantees
// per-slot single-writer/single-reader even under contended cursor
// advancement.
type seqSlot[T any] struct {
	seq  atomix.Uint64
	data T
	_    padShort
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
