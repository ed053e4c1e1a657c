/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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
 *
 */

// Package clock provides the wall-clock and monotonic-tick sources shared by
// the handshake, firewall, priority queue and time-sync subsystems.
package clock

import (
	"time"

	atmlib "github.com/nalix-io/nalix-core/atomic"
)

// start anchors MonoTicksNow to a process-local monotonic origin, so callers
// never observe negative or wrapping tick values across a long-lived process.
var start = time.Now()

// UnixMillisecondsNow returns the current wall-clock time as Unix milliseconds.
func UnixMillisecondsNow() int64 {
	return time.Now().UnixMilli()
}

// MonoTicksNow returns a monotonically increasing tick count in milliseconds,
// anchored at process start. It never jumps backward when the wall clock is
// adjusted (NTP step, time-sync correction), because it is derived from Go's
// monotonic reading (time.Since), not from UnixMilli.
func MonoTicksNow() int64 {
	return time.Since(start).Milliseconds()
}

// Source is a per-connection or per-server offset clock, adjusted by the
// time-sync exchange (timesync package) without mutating the process clock.
type Source struct {
	offset atmlib.Value[int64]
}

// New returns a Source with a zero offset.
func New() *Source {
	s := &Source{offset: atmlib.NewValue[int64]()}
	s.offset.Store(0)
	return s
}

// SetOffsetMilliseconds records the clock offset computed by the time-sync
// exchange (timesync.Result.OffsetMilliseconds), applied by Now/UnixMilli.
func (s *Source) SetOffsetMilliseconds(offset int64) {
	s.offset.Store(offset)
}

// OffsetMilliseconds returns the currently applied offset.
func (s *Source) OffsetMilliseconds() int64 {
	return s.offset.Load()
}

// Now returns the wall-clock time adjusted by the current offset.
func (s *Source) Now() time.Time {
	return time.Now().Add(time.Duration(s.offset.Load()) * time.Millisecond)
}

// UnixMilli returns UnixMillisecondsNow adjusted by the current offset.
func (s *Source) UnixMilli() int64 {
	return UnixMillisecondsNow() + s.offset.Load()
}
