/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package startStop manages one background goroutine with an explicit
// start/stop lifecycle: the start function is launched asynchronously and
// is expected to block on its context until stopped; the stop function
// runs during Stop after the context is cancelled. Errors from either
// function are collected rather than returned, since both run detached
// from the caller.
package startStop

import (
	"context"
	"errors"
	"time"

	librun "github.com/nalix-io/nalix-core/runner"
)

var (
	// ErrInvalidStart is collected when Start is called on a runner built
	// with a nil start function.
	ErrInvalidStart = errors.New("invalid start function")

	// ErrInvalidStop is collected when Stop is called on a runner built
	// with a nil stop function.
	ErrInvalidStop = errors.New("invalid stop function")
)

// FuncStartStop is the shape of both lifecycle functions: the start
// function should block on ctx until cancelled, the stop function should
// release whatever the start function holds.
type FuncStartStop func(ctx context.Context) error

// StartStop runs one background function with start/stop semantics.
//
// Start launches the start function in a goroutine and returns
// immediately; a runner that is already running is stopped first. Stop
// cancels the start function's context, waits for the goroutine to exit
// (bounded by the caller's context), then runs the stop function.
// Both are idempotent and safe for concurrent use.
type StartStop interface {
	librun.Runner

	// Start launches the start function asynchronously. If the runner is
	// already running, the previous instance is stopped first. Errors from
	// the start function are collected, not returned.
	Start(ctx context.Context) error

	// Stop cancels the running start function, waits for it to exit
	// (bounded by ctx), then calls the stop function. Errors from the stop
	// function are collected, not returned. Calling Stop on a stopped
	// runner is a no-op.
	Stop(ctx context.Context) error

	// Restart is Stop followed by Start.
	Restart(ctx context.Context) error

	// Uptime returns the time elapsed since the last successful Start, or
	// zero when the runner is not running.
	Uptime() time.Duration

	// ErrorsLast returns the most recently collected error, or nil.
	ErrorsLast() error

	// ErrorsList returns every error collected since the runner was
	// created, oldest first.
	ErrorsList() []error
}

// New builds a StartStop around the two lifecycle functions. Either may
// be nil; the corresponding operation then collects ErrInvalidStart /
// ErrInvalidStop instead of running.
func New(start, stop FuncStartStop) StartStop {
	return &run{
		fs: start,
		fp: stop,
	}
}
