// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seakcutils

// CacheLine is the assumed hardware cache line size in bytes. Hot atomic
// fields accessed by different goroutines are padded to a multiple of this
// to avoid false sharing.
const CacheLine = 64

// pad is cache line padding between unrelated hot fields.
type pad [CacheLine]byte

// padShort pads out the remainder of a cache line after an 8-byte field.
type padShort [CacheLine - 8]byte
