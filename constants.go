// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seakcutils

// Default capacities. All are starting points a caller can override
// through the relevant Option type; none are load-bearing invariants.
const (
	// DefaultRegionCapacity is the number of slots carved into a new
	// Arena region.
	DefaultRegionCapacity = 4096

	// DefaultMaxRegions is the hard ceiling on how many regions an Arena
	// will grow to before Alloc panics with ErrCapacityExceeded.
	DefaultMaxRegions = 1024

	// DefaultMaxJobs is the default ceiling on live JobHandle records a
	// Scheduler will track before its next epoch reset, and sizes its
	// internal arena accordingly (DefaultRegionCapacity * DefaultMaxRegions
	// slots across DefaultMaxRegions regions).
	DefaultMaxJobs = DefaultRegionCapacity * DefaultMaxRegions

	// schedulerResetMargin is how far below maxJobs the completion count
	// must climb before an epoch reset triggers, per spec's "near the
	// arena's absolute capacity" threshold.
	schedulerResetMargin = 20
)
