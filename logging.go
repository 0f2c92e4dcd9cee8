// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seakcutils

import (
	"os"
	"sync"

	"github.com/agilira/lethe"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the structured logger type used for the administrative
// lifecycle events emitted by [Pool], [Scheduler] and [Arena]: pool
// start/shutdown, spawn_scheduler/shutdown_scheduler, arena region
// growth, and epoch resets.
//
// Nothing on the hot path (ring Enqueue/Dequeue, arena alloc/add, wait
// group Wait, or a running job body) touches a Logger, except for the one
// line an arena Alloc writes when it creates a new region: those paths run
// far too often, and far too close to real time budgets, for any logging
// call to keep up.
type Logger = logiface.Logger[*stumpy.Event]

var (
	defaultLoggerOnce sync.Once
	defaultLoggerVal  *Logger
)

// defaultLogger lazily builds the package default logger: a stumpy JSON
// logger writing to stderr. Rotation-free and filesystem-free by
// default, so running this package's tests never drops a growing log
// file into whatever directory `go test` happens to run in. Callers who
// want persistent, rotated logs should build one with [NewFileLogger]
// and pass it through [WithPoolLogger]/[WithArenaLogger]/[WithLogger].
func defaultLogger() *Logger {
	defaultLoggerOnce.Do(func() {
		defaultLoggerVal = stumpy.L.New(
			stumpy.L.WithStumpy(stumpy.WithWriter(os.Stderr)),
			stumpy.L.WithLevel(logiface.LevelInformational),
		)
	})
	return defaultLoggerVal
}

// NewFileLogger builds a Logger that writes through a lethe rotating
// file sink at path instead of the package default's stderr sink,
// rotating at 64MB and keeping 3 compressed backups.
func NewFileLogger(path string) *Logger {
	sink := &lethe.Logger{
		Filename:   path,
		MaxSizeStr: "64MB",
		MaxBackups: 3,
		Compress:   true,
	}
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(sink)),
		stumpy.L.WithLevel(logiface.LevelInformational),
	)
}
