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

// Package aggregator serializes concurrent writes onto a single output
// function: writes are buffered in a channel and drained by one
// background goroutine, so the output function is never called
// concurrently. The log sinks use it to funnel many logging goroutines
// into one file or socket writer.
package aggregator

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	libatm "github.com/nalix-io/nalix-core/atomic"
	librun "github.com/nalix-io/nalix-core/runner/startStop"
)

var (
	// ErrInvalidWriter is returned by New when Config.FctWriter is nil.
	ErrInvalidWriter = errors.New("invalid writer")

	// ErrInvalidInstance is returned when the aggregator's internal state
	// is corrupted or when attempting to use an uninitialized instance.
	ErrInvalidInstance = errors.New("invalid instance")

	// ErrStillRunning is returned by Start when the aggregator is already
	// running.
	ErrStillRunning = errors.New("still running")

	// ErrClosedResources is returned by Write when attempting to write to
	// an aggregator that has been closed or whose context has been
	// cancelled.
	ErrClosedResources = errors.New("closed resources")

	// closedChan is a pre-closed channel used as a sentinel value to
	// indicate that the aggregator's write channel has been closed.
	closedChan = make(chan []byte, 1)
)

func init() {
	close(closedChan)
}

// Aggregator accepts writes from any number of goroutines and hands them,
// one at a time and in arrival order, to the configured writer function.
//
// The interface embeds context.Context (cancellation of the processing
// loop), the StartStop lifecycle, io.Writer (the producer side) and
// io.Closer. The aggregator must be started with Start() before accepting
// writes; writing before then returns ErrClosedResources.
type Aggregator interface {
	context.Context
	librun.StartStop

	io.Closer
	io.Writer

	// SetLoggerError sets a custom error logging function.
	// If nil, a no-op function is used. Thread-safe.
	SetLoggerError(func(msg string, err ...error))

	// SetLoggerInfo sets a custom info logging function.
	// If nil, a no-op function is used. Thread-safe.
	SetLoggerInfo(func(msg string, arg ...any))

	// NbWaiting returns the number of Write() calls currently blocked
	// waiting to send data to the internal channel. A growing value means
	// the buffer (Config.BufWriter) is full and producers are stalling.
	NbWaiting() int64

	// NbProcessing returns the number of data items currently buffered in
	// the internal channel waiting to be processed by FctWriter.
	NbProcessing() int64

	// SizeWaiting returns the total size in bytes of all Write() calls
	// currently blocked waiting to send data to the internal channel.
	SizeWaiting() int64

	// SizeProcessing returns the total size in bytes of all data items
	// currently buffered in the internal channel.
	SizeProcessing() int64
}

// extLogger is the structural slice of the module's logger.Logger this
// package consumes. Declared locally: importing the logger package here
// would cycle, since the log sinks are this package's main consumers.
type extLogger interface {
	Error(message string, data interface{}, args ...interface{})
	Info(message string, data interface{}, args ...interface{})
}

// New creates a new Aggregator from cfg. The returned aggregator is in a
// stopped state and must be started with Start() before accepting writes.
// New fails only when cfg.FctWriter is nil.
//
// An optional logger may be passed as a trailing argument; anything
// exposing the module logger's Error/Info methods is wired into the
// aggregator's internal logging, anything else (including nil) is
// ignored. SetLoggerError/SetLoggerInfo can override it later.
func New(ctx context.Context, cfg Config, log ...any) (Aggregator, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	a := &agg{
		x:  libatm.NewValue[context.Context](),
		n:  libatm.NewValue[context.CancelFunc](),
		r:  libatm.NewValue[librun.StartStop](),
		le: libatm.NewValue[func(msg string, err ...error)](),
		li: libatm.NewValue[func(msg string, arg ...any)](),
		at: time.Minute,
		am: -1,
		af: nil,
		st: time.Minute,
		sf: nil,
		mw: sync.Mutex{},
		fw: nil,
		sh: 1,
		ch: libatm.NewValue[chan []byte](),
		op: new(atomic.Bool),
		cd: new(atomic.Int64),
		cw: new(atomic.Int64),
		sd: new(atomic.Int64),
		sw: new(atomic.Int64),
	}

	// Store initial context (but don't open channel yet - done in run())
	a.ctxNew(ctx)
	a.op.Store(false)

	if cfg.AsyncMax > -1 {
		a.am = cfg.AsyncMax
	}

	if cfg.AsyncTimer > 0 && cfg.AsyncFct != nil {
		a.at = cfg.AsyncTimer
		a.af = cfg.AsyncFct
	}

	if cfg.SyncTimer > 0 && cfg.SyncFct != nil {
		a.st = cfg.SyncTimer
		a.sf = cfg.SyncFct
	}

	if cfg.BufWriter != 0 {
		a.sh = cfg.BufWriter
	}

	if cfg.FctWriter != nil {
		a.fw = cfg.FctWriter
	} else {
		return nil, ErrInvalidWriter
	}

	for _, v := range log {
		if l, ok := v.(extLogger); ok && l != nil {
			a.SetLoggerError(func(msg string, err ...error) {
				l.Error(msg, err)
			})
			a.SetLoggerInfo(func(msg string, arg ...any) {
				l.Info(msg, nil, arg...)
			})
		}
	}

	return a, nil
}
