// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package seakcutils

// RaceEnabled is true when the race detector is active.
// Tests can use it to skip concurrent tests for generic [T] queue
// variants, which can trigger false positives due to cross-variable
// memory ordering; the tests in this package do not consult it.
const RaceEnabled = true
