// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seakcutils

// PoolOptions configures [NewPool].
type PoolOptions struct {
	workers int
	logger  *Logger
}

// PoolOption mutates a PoolOptions during [NewPool].
type PoolOption func(*PoolOptions)

// WithWorkers sets the fixed number of worker goroutines. Defaults to 1
// if unset or non-positive.
func WithWorkers(n int) PoolOption {
	return func(o *PoolOptions) { o.workers = n }
}

// WithPoolLogger overrides the pool's administrative logger. Defaults to
// the package default logger.
func WithPoolLogger(l *Logger) PoolOption {
	return func(o *PoolOptions) { o.logger = l }
}

func newPoolOptions(opts []PoolOption) PoolOptions {
	o := PoolOptions{workers: 1, logger: defaultLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return o
}

// ArenaOptions configures [NewArena].
type ArenaOptions struct {
	regionCapacity int
	maxRegions     int
	logger         *Logger
}

// ArenaOption mutates an ArenaOptions during [NewArena].
type ArenaOption func(*ArenaOptions)

// WithRegionCapacity sets the number of slots per region. Defaults to
// DefaultRegionCapacity.
func WithRegionCapacity(n int) ArenaOption {
	return func(o *ArenaOptions) { o.regionCapacity = n }
}

// WithMaxRegions sets the hard ceiling on concurrently-live regions.
// Defaults to DefaultMaxRegions.
func WithMaxRegions(n int) ArenaOption {
	return func(o *ArenaOptions) { o.maxRegions = n }
}

// WithArenaLogger overrides the arena's administrative logger. Defaults
// to the package default logger.
func WithArenaLogger(l *Logger) ArenaOption {
	return func(o *ArenaOptions) { o.logger = l }
}

func newArenaOptions(opts []ArenaOption) ArenaOptions {
	o := ArenaOptions{
		regionCapacity: DefaultRegionCapacity,
		maxRegions:     DefaultMaxRegions,
		logger:         defaultLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.regionCapacity < 1 {
		o.regionCapacity = DefaultRegionCapacity
	}
	if o.maxRegions < 1 {
		o.maxRegions = DefaultMaxRegions
	}
	return o
}

// SchedulerOptions configures [NewScheduler].
type SchedulerOptions struct {
	maxJobs int
	logger  *Logger
}

// SchedulerOption mutates a SchedulerOptions during [NewScheduler].
type SchedulerOption func(*SchedulerOptions)

// WithMaxJobs sets the overall ceiling on live JobHandle records the
// scheduler's arena is sized for; the scheduler derives its arena's
// region count from this value (region capacity stays fixed at
// DefaultRegionCapacity) and measures its epoch-reset threshold
// (maxJobs-20) against it. Defaults to DefaultMaxJobs.
func WithMaxJobs(n int) SchedulerOption {
	return func(o *SchedulerOptions) { o.maxJobs = n }
}

// WithLogger overrides the scheduler's administrative logger. Defaults
// to the package default logger.
func WithLogger(l *Logger) SchedulerOption {
	return func(o *SchedulerOptions) { o.logger = l }
}

func newSchedulerOptions(opts []SchedulerOption) SchedulerOptions {
	o := SchedulerOptions{maxJobs: DefaultMaxJobs, logger: defaultLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxJobs < 1 {
		o.maxJobs = DefaultMaxJobs
	}
	return o
}
